// Package protocol holds the data model shared by every component of the
// aggregation pipeline: component proofs, aggregation queries, the
// aggregated proof envelope, worker responses and verification-key
// cache entries. None of these types know how they arrived over the wire;
// that is the transport layer's job (see spec.md §6 / SPEC_FULL.md).
package protocol

import (
	"fmt"
	"time"
)

// ProofSystem tags which cryptographic system produced a component proof.
type ProofSystem string

const (
	Groth16 ProofSystem = "groth16"
	Plonk   ProofSystem = "plonk"
	Halo2   ProofSystem = "halo2"
	Nova    ProofSystem = "nova"
)

// ComponentProof is one externally-produced proof to be folded into the
// aggregate. It is never mutated after creation.
type ComponentProof struct {
	SubnetID      uint32
	ProofSystem   ProofSystem
	VKHash        [32]byte
	ProofBytes    []byte
	PublicInputs  []string // decimal field-element strings
}

// AggregationQuery is the input to one aggregation task. Proof order is
// significant: it defines the folding order and the linkage digest.
type AggregationQuery struct {
	BaseProofs []ComponentProof
	Depth      uint8
}

// Validate enforces the preconditions from spec.md §3/§4.3.
func (q AggregationQuery) Validate() error {
	if len(q.BaseProofs) == 0 {
		return fmt.Errorf("%w: base_proofs must be non-empty", ErrInvalidInput)
	}
	if q.Depth < 1 {
		return fmt.Errorf("%w: depth must be >= 1, got %d", ErrInvalidInput, q.Depth)
	}
	return nil
}

// SubnetIDs returns the ordered subnet ids of the query's base proofs.
func (q AggregationQuery) SubnetIDs() []uint32 {
	ids := make([]uint32, len(q.BaseProofs))
	for i, p := range q.BaseProofs {
		ids[i] = p.SubnetID
	}
	return ids
}

// UniqueSubnets returns |set(subnet_id)| across the query's base proofs.
func (q AggregationQuery) UniqueSubnets() uint32 {
	return UniqueSubnetCount(q.SubnetIDs())
}

// UniqueSubnetCount counts distinct subnet ids in an ordered slice.
func UniqueSubnetCount(subnetIDs []uint32) uint32 {
	seen := make(map[uint32]struct{}, len(subnetIDs))
	for _, id := range subnetIDs {
		seen[id] = struct{}{}
	}
	return uint32(len(seen))
}

// AggregatedProof is the output of the prover: opaque bytes plus the
// linkage digest that was bound into its public inputs.
type AggregatedProof struct {
	Bytes         []byte
	LinkageDigest [32]byte
}

// WorkerResponse is what a miner reports back for one dispatched query.
type WorkerResponse struct {
	AggregatedProof    []byte
	CompressionRatio   float64
	ProvingTimeSeconds float64
}

// SourcedProof is C4's result: the proof a strict majority of responders
// agreed on, plus how many of them agreed (spec.md §4.4/§6: result is
// "(bytes, metadata{proof_system, subnet_id, consensus_count})" —
// proof_system and subnet_id live on Proof itself).
type SourcedProof struct {
	Proof          ComponentProof
	ConsensusCount int
}

// VKEntry is one resolved verification key, as cached by C1.
type VKEntry struct {
	SubnetID    uint32
	ProofSystem ProofSystem
	VKHash      [32]byte
	Bytes       []byte
	FetchedAt   time.Time
}

// RewardScalar is the non-negative scalar C5 produces; zero iff rejected.
type RewardScalar float64
