package protocol

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// magicHeader tags every aggregated-proof envelope the way ptxloader.go's
// PTX\x01 header tags a PTX file. No protoc step is available to generate a
// message type for this repo (see SPEC_FULL.md / DESIGN.md), so the payload
// is framed with the same library's low-level protowire primitives instead
// of a generated struct.
var magicHeader = []byte{0x5a, 0x4b, 0x43, 0x31} // "ZKC1"

// Field numbers for the hand-rolled wire envelope.
const (
	fieldCommitment    protowire.Number = 1
	fieldDepth         protowire.Number = 2
	fieldUniqueSubnets protowire.Number = 3
	fieldLinkageDigest protowire.Number = 4
)

// AggregatedProofEnvelope is the decoded content of an AggregatedProof's
// byte string. Commitment is the only field the verifier trusts; Depth,
// UniqueSubnets and LinkageDigest are carried for diagnostics only — the
// verifier always recomputes its own expectation of them from the caller's
// arguments rather than trusting what is embedded here (spec.md §4.3).
type AggregatedProofEnvelope struct {
	Commitment    []byte
	Depth         uint8
	UniqueSubnets uint32
	LinkageDigest [32]byte
}

// MarshalEnvelope encodes an envelope into the wire format used for
// AggregatedProof.Bytes.
func MarshalEnvelope(env AggregatedProofEnvelope) []byte {
	var b []byte
	b = append(b, magicHeader...)
	b = protowire.AppendTag(b, fieldCommitment, protowire.BytesType)
	b = protowire.AppendBytes(b, env.Commitment)
	b = protowire.AppendTag(b, fieldDepth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(env.Depth))
	b = protowire.AppendTag(b, fieldUniqueSubnets, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(env.UniqueSubnets))
	b = protowire.AppendTag(b, fieldLinkageDigest, protowire.BytesType)
	b = protowire.AppendBytes(b, env.LinkageDigest[:])
	return b
}

// UnmarshalEnvelope decodes the wire format produced by MarshalEnvelope.
func UnmarshalEnvelope(data []byte) (AggregatedProofEnvelope, error) {
	var env AggregatedProofEnvelope

	if len(data) < len(magicHeader) || !bytes.Equal(data[:len(magicHeader)], magicHeader) {
		return env, fmt.Errorf("%w: missing or invalid envelope magic header", ErrMalformedProof)
	}
	rest := data[len(magicHeader):]

	haveLinkage := false
	for len(rest) > 0 {
		num, typ, n := protowire.ConsumeTag(rest)
		if n < 0 {
			return env, fmt.Errorf("%w: %v", ErrMalformedProof, protowire.ParseError(n))
		}
		rest = rest[n:]

		switch {
		case num == fieldCommitment && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return env, fmt.Errorf("%w: %v", ErrMalformedProof, protowire.ParseError(n))
			}
			env.Commitment = append([]byte(nil), v...)
			rest = rest[n:]
		case num == fieldDepth && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return env, fmt.Errorf("%w: %v", ErrMalformedProof, protowire.ParseError(n))
			}
			env.Depth = uint8(v)
			rest = rest[n:]
		case num == fieldUniqueSubnets && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return env, fmt.Errorf("%w: %v", ErrMalformedProof, protowire.ParseError(n))
			}
			env.UniqueSubnets = uint32(v)
			rest = rest[n:]
		case num == fieldLinkageDigest && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return env, fmt.Errorf("%w: %v", ErrMalformedProof, protowire.ParseError(n))
			}
			if len(v) != 32 {
				return env, fmt.Errorf("%w: linkage digest must be 32 bytes, got %d", ErrMalformedProof, len(v))
			}
			copy(env.LinkageDigest[:], v)
			haveLinkage = true
			rest = rest[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, rest)
			if n < 0 {
				return env, fmt.Errorf("%w: %v", ErrMalformedProof, protowire.ParseError(n))
			}
			rest = rest[n:]
		}
	}

	if env.Commitment == nil || !haveLinkage {
		return env, fmt.Errorf("%w: envelope missing required fields", ErrMalformedProof)
	}
	return env, nil
}
