package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
	"github.com/Stygian-Inc/zk-compose-go/pkg/scoring"
)

var (
	scoreProofHex     string
	scoreCompression  float64
	scoreProvingTime  float64
)

var scoreCmd = &cobra.Command{
	Use:   "score <query.json>",
	Short: "Compute the reward for one worker response to a query",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query, err := loadQuery(args[0])
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}

		var proofBytes []byte
		if scoreProofHex != "" {
			proofBytes, err = hex.DecodeString(scoreProofHex)
			if err != nil {
				printError("invalid --proof-hex: " + err.Error())
				os.Exit(1)
			}
		}

		response := &protocol.WorkerResponse{
			AggregatedProof:    proofBytes,
			CompressionRatio:   scoreCompression,
			ProvingTimeSeconds: scoreProvingTime,
		}

		cfg := buildConfig()
		e := buildEngine()
		scorer := scoring.New(cfg, e)
		reward := scorer.Reward(context.Background(), query, response)

		out, _ := json.Marshal(map[string]interface{}{"reward": float64(reward)})
		fmt.Println(string(out))
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreProofHex, "proof-hex", "", "hex-encoded aggregated proof bytes")
	scoreCmd.Flags().Float64Var(&scoreCompression, "compression-ratio", 1.0, "reported compression ratio")
	scoreCmd.Flags().Float64Var(&scoreProvingTime, "proving-time-seconds", 0, "reported proving time")
	scoreCmd.Flags().StringVar(&vkCacheDir, "vk-cache-dir", "", "override the verification-key cache directory")
	scoreCmd.Flags().StringVar(&vkRegistryURL, "vk-registry-url", "", "override the verification-key registry base URL")
	rootCmd.AddCommand(scoreCmd)
}
