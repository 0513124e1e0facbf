// Package taskguard is a distributed claim guard for C4, generalized
// from the teacher's pkg/nonce/store.go SETNX-based nonce store: instead
// of rejecting a replayed nonce, it lets at most one coordinator process
// fetch a given task id's external proof at a time. It is optional —
// Guard is nil-safe and always grants the claim when no Redis URL is
// configured, so a single-process deployment needs no Redis at all.
package taskguard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard coordinates claims on aggregation task ids across processes.
type Guard struct {
	client *redis.Client
}

// New returns a Guard backed by the given Redis URL, or (nil, nil) if
// url is empty — callers should treat a nil *Guard as always-claimable.
func New(url string) (*Guard, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Guard{client: redis.NewClient(opts)}, nil
}

// Claim attempts to become the sole owner of taskID for ttl. It reports
// true if the claim was granted (key was not already set), false if
// another process already holds it. A nil Guard always grants the claim.
func (g *Guard) Claim(ctx context.Context, taskID string, ttl time.Duration) (bool, error) {
	if g == nil {
		return true, nil
	}
	return g.client.SetNX(ctx, "taskguard:"+taskID, "1", ttl).Result()
}

// Release drops the claim early, e.g. after a sourcing attempt fails and
// another coordinator should be allowed to retry immediately.
func (g *Guard) Release(ctx context.Context, taskID string) error {
	if g == nil {
		return nil
	}
	return g.client.Del(ctx, "taskguard:"+taskID).Err()
}

// Close releases the underlying Redis connection. A nil Guard is a no-op.
func (g *Guard) Close() error {
	if g == nil {
		return nil
	}
	return g.client.Close()
}
