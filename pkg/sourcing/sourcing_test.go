package sourcing

import (
	"context"
	"errors"
	"testing"

	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// scriptedFetcher returns a fixed proof payload per responder index,
// modeling spec.md §8 invariant 8's {A,A,A,B,C} / {A,A,B,B,C} fixtures.
type scriptedFetcher struct {
	payloads []string
}

func (f *scriptedFetcher) Fetch(ctx context.Context, responderIndex int, taskID string) (protocol.ComponentProof, error) {
	return protocol.ComponentProof{
		SubnetID:    2,
		ProofSystem: protocol.Groth16,
		ProofBytes:  []byte(f.payloads[responderIndex]),
	}, nil
}

func testConfig() config.Config {
	return config.New(config.WithSourcingK(5), config.WithSourcingMajority(3))
}

// TestQuorumSuccess is scenario S8: five responders return
// "alpha","alpha","alpha","beta","gamma" and consensus is reached on
// "alpha" with consensus_count 3.
func TestQuorumSuccess(t *testing.T) {
	fetcher := &scriptedFetcher{payloads: []string{"alpha", "alpha", "alpha", "beta", "gamma"}}
	client := New(testConfig(), fetcher, nil)

	sourced, err := client.FetchByTaskID(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("FetchByTaskID: %v", err)
	}
	if string(sourced.Proof.ProofBytes) != "alpha" {
		t.Fatalf("proof = %q, want %q", sourced.Proof.ProofBytes, "alpha")
	}
	if sourced.ConsensusCount != 3 {
		t.Fatalf("ConsensusCount = %d, want 3", sourced.ConsensusCount)
	}
}

// TestQuorumFailure is spec.md §8 invariant 8's second fixture:
// {A,A,B,B,C} has no group reaching the majority threshold of 3, so C4
// reports ConsensusFailure with 3 distinct proof versions.
func TestQuorumFailure(t *testing.T) {
	fetcher := &scriptedFetcher{payloads: []string{"alpha", "alpha", "beta", "beta", "gamma"}}
	client := New(testConfig(), fetcher, nil)

	_, err := client.FetchByTaskID(context.Background(), "task-2")
	if err == nil {
		t.Fatalf("expected a consensus failure")
	}

	var cfErr *protocol.ConsensusFailureError
	if !errors.As(err, &cfErr) {
		t.Fatalf("expected a *protocol.ConsensusFailureError, got %T: %v", err, err)
	}
	if cfErr.DistinctVersions != 3 {
		t.Fatalf("DistinctVersions = %d, want 3", cfErr.DistinctVersions)
	}
}
