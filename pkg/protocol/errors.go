package protocol

import (
	"errors"
	"fmt"
)

// Sentinel errors per spec.md §7. Use errors.Is against these; the
// prover/registry wrap them with %w to add context the way the teacher's
// pkg/verifier and pkg/prover do.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnsupportedProofSystem = errors.New("unsupported proof system")
	ErrMalformedProof         = errors.New("malformed proof")
	ErrVKUnavailable          = errors.New("verification key unavailable")
	ErrVKCorrupt              = errors.New("verification key corrupt")
	ErrProofGeneration        = errors.New("proof generation error")
	ErrConsensusFailure       = errors.New("consensus failure")
	ErrTimeout                = errors.New("timeout")
)

// ConsensusFailureError carries the distinct-version count C4 saw before
// giving up on quorum.
type ConsensusFailureError struct {
	TaskID           string
	DistinctVersions int
}

func (e *ConsensusFailureError) Error() string {
	return fmt.Sprintf("consensus failure for task %q: %d distinct proof versions, no majority", e.TaskID, e.DistinctVersions)
}

func (e *ConsensusFailureError) Unwrap() error { return ErrConsensusFailure }

// ProofGenerationError names which base proof (or prover stage) failed.
type ProofGenerationError struct {
	Reason string
}

func (e *ProofGenerationError) Error() string {
	return fmt.Sprintf("proof generation error: %s", e.Reason)
}

func (e *ProofGenerationError) Unwrap() error { return ErrProofGeneration }
