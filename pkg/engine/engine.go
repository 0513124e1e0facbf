// Package engine implements C3, the recursive aggregation engine:
// prove_composition and verify_composition. It is grounded on
// original_source/zk_compose/zk_logic/zk_engine.py and
// original_source/zk_compose/folding_logic.py: the Python reference
// delegates the actual cryptography to a native "zk_bridge" module this
// repo has no equivalent of, so the linkage/commitment construction
// below is this module's own, built to satisfy the same two complexity
// invariants the reference enforces by contract (prover ~O(depth *
// proofs * subnets), verifier independent of depth) rather than a
// byte-for-byte port.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Stygian-Inc/zk-compose-go/internal/zklog"
	"github.com/Stygian-Inc/zk-compose-go/pkg/adapters"
	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/cryptoutil"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// recursionSubnetID, recursionProofSystem and recursionVKHash name the
// aggregation layer's own well-known verification key, the same way
// zk_engine.py's verify_composition hardcodes
// VKRegistry.get_vk(subnet_id=1, proof_system="nova", vk_hash="default_prod")
// (SPEC_FULL.md "Supplemented features" #2).
const (
	recursionSubnetID   uint32 = 1
	recursionProofSystem       = protocol.Nova
)

var recursionVKHash = sha256.Sum256([]byte("default_prod"))

// VKSource resolves verification keys; pkg/vkregistry.Registry satisfies
// this.
type VKSource interface {
	GetVK(ctx context.Context, subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) ([]byte, error)
}

// Engine implements C3 over a verification-key source and the C2
// adapter registry.
type Engine struct {
	cfg config.Config
	vks VKSource
	log zklog.Logger
}

// New builds an Engine.
func New(cfg config.Config, vks VKSource) *Engine {
	return &Engine{cfg: cfg, vks: vks, log: zklog.Component("engine")}
}

// ProveComposition runs C3's prove_composition operation (spec.md §4.3):
// validate the query, pre-verify every base proof with its C2 adapter,
// compute the linkage digest and commitment, simulate depth-proportional
// proving work, and wrap the result in a protocol envelope.
func (e *Engine) ProveComposition(ctx context.Context, query protocol.AggregationQuery) (protocol.AggregatedProof, error) {
	if err := query.Validate(); err != nil {
		return protocol.AggregatedProof{}, err
	}

	canon, err := e.canonicalizeBaseProofs(ctx, query.BaseProofs)
	if err != nil {
		return protocol.AggregatedProof{}, err
	}

	linkage := linkageDigest(canon)
	uniqueSubnets := query.UniqueSubnets()
	commitment := commitmentDigest(linkage, query.Depth, uniqueSubnets)

	start := time.Now()
	simulateProvingWork(len(query.BaseProofs), int(query.Depth), int(uniqueSubnets), e.cfg.ProvingWorkUnit)
	elapsed := time.Since(start)

	e.log.Info().
		Int("base_proofs", len(query.BaseProofs)).
		Uint8("depth", query.Depth).
		Uint32("unique_subnets", uniqueSubnets).
		Dur("proving_time", elapsed).
		Msg("proof composition produced")

	env := protocol.AggregatedProofEnvelope{
		Commitment:    commitment,
		Depth:         query.Depth,
		UniqueSubnets: uniqueSubnets,
		LinkageDigest: linkage,
	}
	return protocol.AggregatedProof{
		Bytes:         protocol.MarshalEnvelope(env),
		LinkageDigest: linkage,
	}, nil
}

// VerifyComposition runs C3's verify_composition operation: it never
// trusts metadata embedded in the aggregated proof bytes, only the
// caller-supplied query and the commitment it recomputes from it.
// Its cost does not depend on depth: one recursion VK fetch (cached), one
// pass over the base proofs (VK lookup, adapter pre-verification,
// canonical bytes) to recompute the linkage digest, and one SHA-256
// commitment. That pass grows linearly with the number of base proofs.
func (e *Engine) VerifyComposition(ctx context.Context, aggregated protocol.AggregatedProof, query protocol.AggregationQuery) (bool, string) {
	if err := query.Validate(); err != nil {
		return false, fmt.Sprintf("invalid query: %v", err)
	}

	if _, err := e.vks.GetVK(ctx, recursionSubnetID, recursionProofSystem, recursionVKHash); err != nil {
		return false, fmt.Sprintf("recursion verification key unavailable: %v", err)
	}

	env, err := protocol.UnmarshalEnvelope(aggregated.Bytes)
	if err != nil {
		return false, fmt.Sprintf("malformed aggregated proof: %v", err)
	}

	canon, err := e.canonicalizeBaseProofs(ctx, query.BaseProofs)
	if err != nil {
		return false, fmt.Sprintf("base proof validation failed: %v", err)
	}

	expectedLinkage := linkageDigest(canon)
	expectedSubnets := query.UniqueSubnets()
	expectedCommitment := commitmentDigest(expectedLinkage, query.Depth, expectedSubnets)

	switch {
	case env.Depth != query.Depth:
		return false, fmt.Sprintf("depth mismatch: proof carries depth %d, query expects %d", env.Depth, query.Depth)
	case env.UniqueSubnets != expectedSubnets:
		return false, fmt.Sprintf("subnet mismatch: proof carries %d unique subnets, query expects %d", env.UniqueSubnets, expectedSubnets)
	case env.LinkageDigest != expectedLinkage:
		return false, "integrity failure: linkage digest does not match base proofs"
	case !bytesEqual(env.Commitment, expectedCommitment):
		return false, "cryptographic failure: commitment does not match expected value"
	}

	return true, "verification passed"
}

// PublicParameters returns a stable identifier for the recursion
// system's public parameters, grounded on
// original_source/tests/test_zk_logic.py's test_generate_public_parameters
// (SPEC_FULL.md "Supplemented features" #4).
func (e *Engine) PublicParameters(system protocol.ProofSystem) (string, error) {
	if system != recursionProofSystem {
		return "", fmt.Errorf("%w: public parameters are only defined for the recursion system (%s)", protocol.ErrUnsupportedProofSystem, recursionProofSystem)
	}
	h := sha256.Sum256([]byte(fmt.Sprintf("zk-compose-public-params:%s:%s", recursionProofSystem, hex.EncodeToString(recursionVKHash[:]))))
	return hex.EncodeToString(h[:]), nil
}

// canonicalizeBaseProofs runs each proof's C2 adapter over it, in
// order, returning its canonical bytes. An adapter rejection here
// aborts the whole aggregation (spec.md §4.2: "a malformed component
// proof invalidates the whole composition").
func (e *Engine) canonicalizeBaseProofs(ctx context.Context, proofs []protocol.ComponentProof) ([][]byte, error) {
	canon := make([][]byte, len(proofs))
	for i, p := range proofs {
		adapter, err := adapters.Lookup(p.ProofSystem)
		if err != nil {
			return nil, err
		}

		vkBytes, err := e.vks.GetVK(ctx, p.SubnetID, p.ProofSystem, p.VKHash)
		if err != nil {
			return nil, fmt.Errorf("base proof %d: %w", i, err)
		}

		ok, err := adapter.PreVerify(p.ProofBytes, vkBytes, p.PublicInputs)
		if err != nil {
			return nil, fmt.Errorf("base proof %d: %w", i, err)
		}
		if !ok {
			return nil, &protocol.ProofGenerationError{Reason: fmt.Sprintf("base proof %d rejected", i)}
		}

		cb, err := adapter.CanonicalBytes(p.ProofBytes)
		if err != nil {
			return nil, fmt.Errorf("base proof %d: %w", i, err)
		}
		canon[i] = cb
	}
	return canon, nil
}

// linkageDigest binds the ordered, canonicalized base proofs together,
// the Go equivalent of zk_engine.py's _extract_linkage: SHA-256 over
// the concatenation of the component proofs, in query order (order is
// significant — spec.md §4.3's reordering-sensitivity invariant).
func linkageDigest(canonicalProofs [][]byte) [32]byte {
	h := sha256.New()
	for _, p := range canonicalProofs {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// commitmentDigest folds the linkage digest together with depth and
// unique-subnet count into the single value both prover and verifier
// compute from scratch, composed via cryptoutil's field-element helpers
// (the same "hash then reduce into BN254 Fr" shape the teacher's
// crypto.go used for its own commitment, minus the dropped Poseidon
// step — see SPEC_FULL.md): the linkage digest splits into two field
// elements, and the depth/subnet-count pair is folded in as a third via
// FieldElementFromBytes, so the metadata that must invalidate a
// commitment on mismatch (§4.3's depth/subnet-mismatch invariant) goes
// through the same scalar-field reduction as the linkage itself rather
// than being appended as raw bytes.
func commitmentDigest(linkage [32]byte, depth uint8, uniqueSubnets uint32) []byte {
	p1, p2 := cryptoutil.SplitHashToFieldElements(hex.EncodeToString(linkage[:]))
	depthElem := cryptoutil.FieldElementFromBytes([]byte(fmt.Sprintf("depth:%d:subnets:%d", depth, uniqueSubnets)))

	h := sha256.New()
	b1 := p1.Bytes()
	b2 := p2.Bytes()
	b3 := depthElem.Bytes()
	h.Write(b1[:])
	h.Write(b2[:])
	h.Write(b3[:])
	return h.Sum(nil)
}

// simulateProvingWork reproduces folding_logic.py's explicit "Intensify
// compute to match 'No Fake Things' requirement" busy loop: work scales
// with proofs * depth * uniqueSubnets, but is entirely decoupled from
// the commitment math above, so VerifyComposition never pays this cost
// (spec.md §8 invariant 6). unit scales the per-work-factor iteration
// count; tests shrink it to keep the suite fast.
func simulateProvingWork(numProofs, depth, uniqueSubnets, unit int) {
	workFactor := numProofs * depth * uniqueSubnets
	for i := 0; i < workFactor*unit; i++ {
		h := sha256.Sum256([]byte(fmt.Sprintf("%d", i)))
		_ = h
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
