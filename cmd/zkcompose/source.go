package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stygian-Inc/zk-compose-go/pkg/config"
	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
	"github.com/Stygian-Inc/zk-compose-go/pkg/sourcing"
	"github.com/Stygian-Inc/zk-compose-go/pkg/taskguard"
)

var (
	sourceResponders []string
	sourceRedisURL   string
)

// httpFetcher is a minimal Fetcher over plain HTTP GET, for operators
// who want to drive C4 from the CLI against a set of known responder
// URLs. It is not the production transport (spec.md §1 scopes the P2P
// transport layer out entirely); it exists so `zkcompose source` is
// runnable standalone, the way the teacher's pkg/dns resolver is a bare
// http.Client hitting a fixed DoH endpoint.
type httpFetcher struct {
	client *http.Client
	urls   []string
}

func (f *httpFetcher) Fetch(ctx context.Context, responderIndex int, taskID string) (protocol.ComponentProof, error) {
	if responderIndex >= len(f.urls) {
		return protocol.ComponentProof{}, fmt.Errorf("no responder configured at index %d", responderIndex)
	}
	url := fmt.Sprintf("%s/proof/%s", f.urls[responderIndex], taskID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return protocol.ComponentProof{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return protocol.ComponentProof{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return protocol.ComponentProof{}, fmt.Errorf("responder %d returned status %d", responderIndex, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return protocol.ComponentProof{}, err
	}

	var dto componentProofDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return protocol.ComponentProof{}, err
	}
	proofBytes, err := hex.DecodeString(dto.ProofHex)
	if err != nil {
		return protocol.ComponentProof{}, err
	}
	vkHashBytes, err := hex.DecodeString(dto.VKHash)
	if err != nil || len(vkHashBytes) != 32 {
		return protocol.ComponentProof{}, fmt.Errorf("responder %d: vk_hash must be 32 bytes hex", responderIndex)
	}
	var vkHash [32]byte
	copy(vkHash[:], vkHashBytes)

	return protocol.ComponentProof{
		SubnetID:     dto.SubnetID,
		ProofSystem:  protocol.ProofSystem(dto.ProofSystem),
		VKHash:       vkHash,
		ProofBytes:   proofBytes,
		PublicInputs: dto.PublicInputs,
	}, nil
}

var sourceCmd = &cobra.Command{
	Use:   "source <task-id>",
	Short: "Fetch an externally-produced proof for a task id under 3-of-5 quorum",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskID := args[0]

		if len(sourceResponders) == 0 {
			printError("at least one --responder URL is required")
			os.Exit(1)
		}

		cfg := buildConfig()
		cfg.SourcingK = len(sourceResponders)
		cfg.SourcingMajority = config.MajorityOf(cfg.SourcingK)

		guard, err := taskguard.New(sourceRedisURL)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}

		fetcher := &httpFetcher{client: &http.Client{Timeout: cfg.SourcingTimeout}, urls: sourceResponders}
		client := sourcing.New(cfg, fetcher, guard)

		sourced, err := client.FetchByTaskID(context.Background(), taskID)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}

		printSuccess(fmt.Sprintf("Consensus reached for task %s", taskID))
		fmt.Printf("Subnet: %d  System: %s  Proof bytes: %d  Consensus count: %d\n",
			sourced.Proof.SubnetID, sourced.Proof.ProofSystem, len(sourced.Proof.ProofBytes), sourced.ConsensusCount)
	},
}

func init() {
	sourceCmd.Flags().StringSliceVar(&sourceResponders, "responder", nil, "responder base URL (repeatable; k is the number of responders given)")
	sourceCmd.Flags().StringVar(&sourceRedisURL, "redis-url", "", "optional Redis URL for distributed task-claim coordination")
	rootCmd.AddCommand(sourceCmd)
}
