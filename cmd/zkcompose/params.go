package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stygian-Inc/zk-compose-go/pkg/protocol"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the public-parameters identifier for the recursion system",
	Run: func(cmd *cobra.Command, args []string) {
		e := buildEngine()
		id, err := e.PublicParameters(protocol.Nova)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}
		fmt.Println(id)
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}
