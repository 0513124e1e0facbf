package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/engine"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
	"github.com/Stygian-Inc/zk-compose-go/pkg/vkregistry"
)

var (
	vkCacheDir    string
	vkRegistryURL string
)

func buildConfig() config.Config {
	opts := []config.Option{}
	if vkCacheDir != "" {
		opts = append(opts, config.WithVKCacheDir(vkCacheDir))
	}
	if vkRegistryURL != "" {
		opts = append(opts, config.WithVKRegistryURL(vkRegistryURL))
	}
	return config.New(opts...)
}

func buildEngine() *engine.Engine {
	cfg := buildConfig()
	reg := vkregistry.New(cfg, nil)
	return engine.New(cfg, reg)
}

// componentProofDTO is the JSON-file shape for a single component proof,
// used by the aggregate/verify CLI commands.
type componentProofDTO struct {
	SubnetID     uint32   `json:"subnet_id"`
	ProofSystem  string   `json:"proof_system"`
	VKHash       string   `json:"vk_hash"` // hex-encoded, 32 bytes
	ProofHex     string   `json:"proof_hex"`
	PublicInputs []string `json:"public_inputs"`
}

// aggregationQueryDTO is the JSON-file shape for an AggregationQuery.
type aggregationQueryDTO struct {
	BaseProofs []componentProofDTO `json:"base_proofs"`
	Depth      uint8               `json:"depth"`
}

func loadQuery(path string) (protocol.AggregationQuery, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return protocol.AggregationQuery{}, fmt.Errorf("reading query file: %w", err)
	}
	var dto aggregationQueryDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return protocol.AggregationQuery{}, fmt.Errorf("parsing query JSON: %w", err)
	}

	proofs := make([]protocol.ComponentProof, len(dto.BaseProofs))
	for i, p := range dto.BaseProofs {
		proofBytes, err := hex.DecodeString(p.ProofHex)
		if err != nil {
			return protocol.AggregationQuery{}, fmt.Errorf("base_proofs[%d].proof_hex: %w", i, err)
		}
		vkHashBytes, err := hex.DecodeString(p.VKHash)
		if err != nil || len(vkHashBytes) != 32 {
			return protocol.AggregationQuery{}, fmt.Errorf("base_proofs[%d].vk_hash must be 32 bytes hex", i)
		}
		var vkHash [32]byte
		copy(vkHash[:], vkHashBytes)

		proofs[i] = protocol.ComponentProof{
			SubnetID:     p.SubnetID,
			ProofSystem:  protocol.ProofSystem(p.ProofSystem),
			VKHash:       vkHash,
			ProofBytes:   proofBytes,
			PublicInputs: p.PublicInputs,
		}
	}

	return protocol.AggregationQuery{BaseProofs: proofs, Depth: dto.Depth}, nil
}
