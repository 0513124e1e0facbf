// Package vkregistry implements C1: a content-addressed, TTL-bounded
// verification-key cache backed by a remote registry endpoint. It is
// grounded on the teacher's pkg/dns/resolver.go http.Client construction
// and pkg/prover/prover.go's loadOrSetupKeys file-cache pattern (check
// disk, fetch-on-miss, write back), generalized from a single hardcoded
// DoH key pair to an arbitrary (subnet, proof system, vk hash) triple.
package vkregistry

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Stygian-Inc/zk-compose-go/internal/zklog"
	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/cryptoutil"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

// Registry resolves verification keys by (subnet, proof system, hash),
// caching them on disk under cfg.VKCacheDir.
type Registry struct {
	cfg    config.Config
	client *http.Client
	group  singleflight.Group
	log    zklog.Logger
}

// New builds a Registry. httpClient may be nil, in which case a client
// with a 10s timeout is used (teacher's resolver.go constructs a bare
// &http.Client{} per call; here it is constructed once and reused).
func New(cfg config.Config, httpClient *http.Client) *Registry {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Registry{
		cfg:    cfg,
		client: httpClient,
		log:    zklog.Component("vkregistry"),
	}
}

// GetVK resolves the verification key bytes for (subnetID, system, vkHash).
// It checks the disk cache first (verifying content hash and TTL), and on
// a miss fetches from cfg.VKRegistryURL, retrying once on a transient
// error per spec.md §7, then writes the result back to the cache
// atomically (write-temp, rename).
func (r *Registry) GetVK(ctx context.Context, subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) ([]byte, error) {
	key := cacheKey(subnetID, system, vkHash)

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		return r.resolve(ctx, subnetID, system, vkHash)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (r *Registry) resolve(ctx context.Context, subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) ([]byte, error) {
	path := r.cachePath(subnetID, system, vkHash)

	if b, ok := r.readCache(path, vkHash); ok {
		r.log.Debug().Str("key", cacheKey(subnetID, system, vkHash)).Msg("vk cache hit")
		return b, nil
	}

	var (
		b   []byte
		err error
	)
	for attempt := 0; attempt <= r.cfg.VKFetchRetries; attempt++ {
		b, err = r.fetch(ctx, subnetID, system, vkHash)
		if err == nil {
			break
		}
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("vk fetch failed")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrVKUnavailable, err)
	}

	if cryptoutil.Sha256Hex(b) != hex.EncodeToString(vkHash[:]) {
		return nil, fmt.Errorf("%w: fetched vk hash mismatch", protocol.ErrVKCorrupt)
	}

	if err := r.writeCache(path, b); err != nil {
		r.log.Warn().Err(err).Msg("failed to persist vk to cache")
	}
	return b, nil
}

func (r *Registry) fetch(ctx context.Context, subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) ([]byte, error) {
	url := fmt.Sprintf("%s/vk/%d/%s/%s", r.cfg.VKRegistryURL, subnetID, system, hex.EncodeToString(vkHash[:]))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("vk not found upstream")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vk registry request failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// readCache returns (bytes, true) only if the cached file exists, is
// within TTL, and its content hash still matches vkHash. A stale or
// corrupt entry is removed so the next call refetches cleanly.
func (r *Registry) readCache(path string, vkHash [32]byte) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > r.cfg.VKCacheTTL {
		_ = os.Remove(path)
		return nil, false
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if cryptoutil.Sha256Hex(b) != hex.EncodeToString(vkHash[:]) {
		_ = os.Remove(path)
		return nil, false
	}
	return b, true
}

func (r *Registry) writeCache(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vk-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func (r *Registry) cachePath(subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) string {
	return filepath.Join(r.cfg.VKCacheDir, cacheKey(subnetID, system, vkHash)+".vk")
}

// cacheKey matches the documented on-disk cache layout
// <subnet_id>_<proof_system>_<vk_hash> (spec.md §6 "Cache layout on disk").
func cacheKey(subnetID uint32, system protocol.ProofSystem, vkHash [32]byte) string {
	return fmt.Sprintf("%d_%s_%s", subnetID, system, hex.EncodeToString(vkHash[:]))
}
