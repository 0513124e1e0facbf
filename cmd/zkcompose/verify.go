package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

var verifyProofHex string

var verifyCmd = &cobra.Command{
	Use:   "verify <query.json>",
	Short: "Verify an aggregated proof against the base proofs that produced it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("Composition Verification")

		query, err := loadQuery(args[0])
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}

		if verifyProofHex == "" {
			printError("--proof-hex is required")
			os.Exit(1)
		}
		proofBytes, err := hex.DecodeString(verifyProofHex)
		if err != nil {
			printError("invalid --proof-hex: " + err.Error())
			os.Exit(1)
		}

		e := buildEngine()
		valid, reason := e.VerifyComposition(context.Background(), protocol.AggregatedProof{Bytes: proofBytes}, query)

		if valid {
			printSuccess(reason)
		} else {
			printError(reason)
			os.Exit(1)
		}
		fmt.Println()
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyProofHex, "proof-hex", "", "hex-encoded aggregated proof bytes to verify")
	verifyCmd.Flags().StringVar(&vkCacheDir, "vk-cache-dir", "", "override the verification-key cache directory")
	verifyCmd.Flags().StringVar(&vkRegistryURL, "vk-registry-url", "", "override the verification-key registry base URL")
	rootCmd.AddCommand(verifyCmd)
}
