// Package sourcing implements C4, the external-proof sourcing client:
// it fans a task id out to k responders, groups their answers by
// content hash, and accepts a result only on strict majority. Grounded
// on original_source/zk_compose/integrations/sn2_client.py's
// fetch_proof_by_task_id (query top 5, group by SHA-256, require >= 3
// identical), generalized from a hardcoded 3-of-5 bittensor dendrite
// query to a context/errgroup-driven fan-out over an arbitrary Fetcher.
package sourcing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Stygian-Inc/zk-compose-go/internal/zklog"
	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
	"github.com/Stygian-Inc/zk-compose-go/pkg/taskguard"
)

// Fetcher queries a single responder for a task's proof. Implementations
// wrap whatever transport the deployment uses (P2P, RPC, ...); this
// package only implements the quorum logic on top (spec.md §1's
// explicit Non-goal: "transport layer interfaces only").
type Fetcher interface {
	Fetch(ctx context.Context, responderIndex int, taskID string) (protocol.ComponentProof, error)
}

// Client runs C4's quorum-sourcing operation.
type Client struct {
	cfg     config.Config
	fetcher Fetcher
	guard   *taskguard.Guard
	log     zklog.Logger
}

// New builds a Client. guard may be nil, in which case every call
// proceeds without distributed coordination (single-process mode).
func New(cfg config.Config, fetcher Fetcher, guard *taskguard.Guard) *Client {
	return &Client{cfg: cfg, fetcher: fetcher, guard: guard, log: zklog.Component("sourcing")}
}

type response struct {
	proof protocol.ComponentProof
	hash  string
}

// FetchByTaskID queries cfg.SourcingK responders concurrently and
// returns the proof that cfg.SourcingMajority or more of them agree on
// byte-for-byte, tie-broken by lexicographically smaller content hash if
// more than one hash somehow clears the majority threshold (can only
// happen if SourcingMajority <= SourcingK/2). It groups the answers only
// after every responder has answered or cfg.SourcingTimeout has expired;
// fetches still running once a majority is reached are not cancelled
// early.
func (c *Client) FetchByTaskID(ctx context.Context, taskID string) (protocol.SourcedProof, error) {
	if c.guard != nil {
		claimed, err := c.guard.Claim(ctx, taskID, c.cfg.SourcingTimeout)
		if err != nil {
			return protocol.SourcedProof{}, err
		}
		if !claimed {
			return protocol.SourcedProof{}, &protocol.ConsensusFailureError{TaskID: taskID, DistinctVersions: 0}
		}
		defer c.guard.Release(context.Background(), taskID)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.SourcingTimeout)
	defer cancel()

	responses := make([]response, c.cfg.SourcingK)
	ok := make([]bool, c.cfg.SourcingK)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.cfg.SourcingK; i++ {
		i := i
		g.Go(func() error {
			proof, err := c.fetcher.Fetch(gctx, i, taskID)
			if err != nil {
				c.log.Debug().Err(err).Int("responder", i).Str("task_id", taskID).Msg("fetch failed")
				return nil // a single responder's failure does not abort the group
			}
			responses[i] = response{proof: proof, hash: hashProof(proof)}
			ok[i] = true
			return nil
		})
	}
	// None of the functions passed to g.Go returns an error, so Wait always
	// returns nil; it is called to block until every fetch has finished
	// (a fetch that outlives the deadline sees its context cancelled).
	_ = g.Wait()

	groups := map[string][]protocol.ComponentProof{}
	for i, present := range ok {
		if present {
			groups[responses[i].hash] = append(groups[responses[i].hash], responses[i].proof)
		}
	}

	var winners []string
	for hash, group := range groups {
		if len(group) >= c.cfg.SourcingMajority {
			winners = append(winners, hash)
		}
	}

	if len(winners) == 0 {
		return protocol.SourcedProof{}, &protocol.ConsensusFailureError{TaskID: taskID, DistinctVersions: len(groups)}
	}

	sort.Strings(winners)
	winnerGroup := groups[winners[0]]
	consensusCount := len(winnerGroup)

	c.log.Info().
		Str("task_id", taskID).
		Int("consensus_count", consensusCount).
		Msg("consensus reached")

	return protocol.SourcedProof{Proof: winnerGroup[0], ConsensusCount: consensusCount}, nil
}

func hashProof(p protocol.ComponentProof) string {
	h := sha256.Sum256(p.ProofBytes)
	return hex.EncodeToString(h[:])
}
