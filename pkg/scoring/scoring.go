// Package scoring implements C5, the reward scorer, grounded on
// original_source/zk_compose/validator/reward.py's reward/get_rewards
// functions: verify, then apply a multiplicative stack of depth,
// succinctness and cross-subnet bonuses.
package scoring

import (
	"context"

	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// Verifier is the subset of the engine's API the scorer needs, so the
// scorer depends on this interface rather than on *engine.Engine itself.
type Verifier interface {
	VerifyComposition(ctx context.Context, aggregated protocol.AggregatedProof, query protocol.AggregationQuery) (bool, string)
}

// Scorer computes rewards for worker responses to an aggregation query.
type Scorer struct {
	cfg      config.Config
	verifier Verifier
}

// New builds a Scorer over the given config (for its four §6 bonus
// knobs) and verifier (normally *engine.Engine).
func New(cfg config.Config, verifier Verifier) *Scorer {
	return &Scorer{cfg: cfg, verifier: verifier}
}

// Reward implements spec.md §4.5's exact formula. A response that fails
// cryptographic verification scores 0.0, full stop — no partial credit.
func (s *Scorer) Reward(ctx context.Context, query protocol.AggregationQuery, response *protocol.WorkerResponse) protocol.RewardScalar {
	if response == nil || len(response.AggregatedProof) == 0 {
		return 0
	}

	aggregated := protocol.AggregatedProof{Bytes: response.AggregatedProof}
	ok, _ := s.verifier.VerifyComposition(ctx, aggregated, query)
	if !ok {
		return 0
	}

	score := 1.0

	// Recursion depth multiplier: 1.0x at depth 1, 1.5x at depth 2,
	// min(2.0 + (depth-3)*0.5, cfg.DepthBonusCap) for depth > 2 — i.e.
	// 2.0x at depth 3, rising by 0.5x per further depth level, capped at
	// cfg.DepthBonusCap.
	depth := int(query.Depth)
	switch {
	case depth == 2:
		score *= 1.5
	case depth > 2:
		bonus := 2.0 + float64(depth-3)*0.5
		if bonus > s.cfg.DepthBonusCap {
			bonus = s.cfg.DepthBonusCap
		}
		score *= bonus
	}

	// Succinctness bonus: strictly greater than cfg.CompressionBonusThreshold.
	if response.CompressionRatio > s.cfg.CompressionBonusThreshold {
		score *= s.cfg.CompressionBonusMultiplier
	}

	// Cross-subnet premium: 2+ distinct subnets contributed.
	if query.UniqueSubnets() >= 2 {
		score *= s.cfg.CrossSubnetMultiplier
	}

	return protocol.RewardScalar(score)
}

// GetRewards scores every response against the same query, in order.
func (s *Scorer) GetRewards(ctx context.Context, query protocol.AggregationQuery, responses []*protocol.WorkerResponse) []protocol.RewardScalar {
	rewards := make([]protocol.RewardScalar, len(responses))
	for i, r := range responses {
		rewards[i] = s.Reward(ctx, query, r)
	}
	return rewards
}
