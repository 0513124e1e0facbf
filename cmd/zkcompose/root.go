// Command zkcompose is a cobra CLI tree over the aggregation pipeline,
// grounded on the teacher's cmd/jesuit: a root command with a
// persistent --verbose flag and one subcommand per core operation.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Stygian-Inc/zk-compose-go/internal/zklog"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "zkcompose",
	Short: "zkcompose aggregates and verifies recursive ZK proof compositions",
	Long:  `A CLI for aggregating component proofs into recursive compositions, verifying them, sourcing external proofs under quorum, and scoring worker responses.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zklog.SetLevel(zerolog.DebugLevel)
		} else {
			zklog.SetLevel(zerolog.InfoLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
