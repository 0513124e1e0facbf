package scoring

import (
	"bytes"
	"context"
	"testing"

	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/engine"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

type fakeVKSource struct{}

func (fakeVKSource) GetVK(ctx context.Context, subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) ([]byte, error) {
	return bytes.Repeat([]byte{0xCD}, 64), nil
}

func proofOnSubnet(subnetID uint32, tag byte) protocol.ComponentProof {
	return protocol.ComponentProof{
		SubnetID:     subnetID,
		ProofSystem:  protocol.Nova,
		VKHash:       [32]byte{tag},
		ProofBytes:   bytes.Repeat([]byte{tag}, 96),
		PublicInputs: []string{"1"},
	}
}

// buildQuery constructs a query whose base proofs span exactly
// uniqueSubnets distinct subnet ids, per the scoring-scenario table in
// spec.md §8.
func buildQuery(depth uint8, uniqueSubnets int) protocol.AggregationQuery {
	proofs := make([]protocol.ComponentProof, uniqueSubnets)
	for i := 0; i < uniqueSubnets; i++ {
		proofs[i] = proofOnSubnet(uint32(i+1), byte(i+1))
	}
	return protocol.AggregationQuery{BaseProofs: proofs, Depth: depth}
}

func newScorerAndEngine(t *testing.T) (*Scorer, *engine.Engine) {
	t.Helper()
	cfg := config.New(config.WithProvingWorkUnit(1))
	e := engine.New(cfg, fakeVKSource{})
	return New(cfg, e), e
}

// TestScoringScenarios reproduces spec.md §8's exact reward table
// (S1-S6): generate a real aggregated proof via the engine for each
// (depth, unique_subnets) pair, report it with the given compression
// ratio, and assert the exact reward.
func TestScoringScenarios(t *testing.T) {
	cases := []struct {
		name             string
		depth            uint8
		uniqueSubnets    int
		compressionRatio float64
		want             float64
	}{
		{"S1", 1, 1, 1.0, 1.0},
		{"S2", 2, 1, 1.0, 1.5},
		{"S3", 4, 1, 1.0, 2.5},
		{"S4", 1, 2, 1.0, 2.0},
		{"S5", 1, 1, 3.0, 1.5},
		{"S6", 4, 2, 3.0, 7.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer, e := newScorerAndEngine(t)
			query := buildQuery(tc.depth, tc.uniqueSubnets)

			aggregated, err := e.ProveComposition(context.Background(), query)
			if err != nil {
				t.Fatalf("ProveComposition: %v", err)
			}

			response := &protocol.WorkerResponse{
				AggregatedProof:  aggregated.Bytes,
				CompressionRatio: tc.compressionRatio,
			}

			got := scorer.Reward(context.Background(), query, response)
			if float64(got) != tc.want {
				t.Fatalf("reward = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestScoringTamperedProofIsZero is scenario S7: flipping the last byte
// of the aggregated proof must drop the reward to exactly 0.0.
func TestScoringTamperedProofIsZero(t *testing.T) {
	scorer, e := newScorerAndEngine(t)
	query := buildQuery(4, 2)

	aggregated, err := e.ProveComposition(context.Background(), query)
	if err != nil {
		t.Fatalf("ProveComposition: %v", err)
	}

	tampered := append([]byte(nil), aggregated.Bytes...)
	tampered[len(tampered)-1] ^= 0xFF

	response := &protocol.WorkerResponse{AggregatedProof: tampered, CompressionRatio: 3.0}
	got := scorer.Reward(context.Background(), query, response)
	if got != 0 {
		t.Fatalf("reward = %v, want 0.0", got)
	}
}

func TestScoringNilResponseIsZero(t *testing.T) {
	scorer, _ := newScorerAndEngine(t)
	query := buildQuery(1, 1)

	if got := scorer.Reward(context.Background(), query, nil); got != 0 {
		t.Fatalf("reward = %v, want 0.0", got)
	}
	if got := scorer.Reward(context.Background(), query, &protocol.WorkerResponse{}); got != 0 {
		t.Fatalf("reward for empty aggregated_proof = %v, want 0.0", got)
	}
}

func TestGetRewards(t *testing.T) {
	scorer, e := newScorerAndEngine(t)
	query := buildQuery(1, 1)

	aggregated, err := e.ProveComposition(context.Background(), query)
	if err != nil {
		t.Fatalf("ProveComposition: %v", err)
	}

	good := &protocol.WorkerResponse{AggregatedProof: aggregated.Bytes, CompressionRatio: 1.0}
	bad := &protocol.WorkerResponse{AggregatedProof: nil}

	rewards := scorer.GetRewards(context.Background(), query, []*protocol.WorkerResponse{good, bad})
	if len(rewards) != 2 {
		t.Fatalf("expected 2 rewards, got %d", len(rewards))
	}
	if rewards[0] != 1.0 || rewards[1] != 0.0 {
		t.Fatalf("rewards = %v, want [1.0 0.0]", rewards)
	}
}
