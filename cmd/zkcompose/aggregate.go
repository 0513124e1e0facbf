package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var aggregateOutFile string

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <query.json>",
	Short: "Aggregate a set of component proofs into a recursive composition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printHeader("Proof Aggregation")

		query, err := loadQuery(args[0])
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}

		e := buildEngine()
		aggregated, err := e.ProveComposition(context.Background(), query)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}

		printSuccess(fmt.Sprintf("Aggregated %d base proof(s) at depth %d", len(query.BaseProofs), query.Depth))
		fmt.Printf("Linkage digest: %s\n", hex.EncodeToString(aggregated.LinkageDigest[:]))

		if aggregateOutFile != "" {
			if err := os.WriteFile(aggregateOutFile, aggregated.Bytes, 0o644); err != nil {
				printError(err.Error())
				os.Exit(1)
			}
			printSuccess(fmt.Sprintf("Wrote aggregated proof: %s", aggregateOutFile))
		} else {
			fmt.Printf("Aggregated proof (hex): %s\n", hex.EncodeToString(aggregated.Bytes))
		}
	},
}

func init() {
	aggregateCmd.Flags().StringVar(&aggregateOutFile, "out", "", "output path for the aggregated proof bytes")
	aggregateCmd.Flags().StringVar(&vkCacheDir, "vk-cache-dir", "", "override the verification-key cache directory")
	aggregateCmd.Flags().StringVar(&vkRegistryURL, "vk-registry-url", "", "override the verification-key registry base URL")
	rootCmd.AddCommand(aggregateCmd)
}
