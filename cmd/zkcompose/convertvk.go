package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vocdoni/circom2gnark/parser"
)

// convertVKCmd revives cmd/convert-keys/main.go as a zkcompose subcommand:
// it converts a Circom/SnarkJS verification key JSON into gnark's binary
// VK format — the conversion itself lives in circom2gnark, unchanged from
// the teacher. The groth16 adapter does not read this binary format; its
// PreVerify parses the Circom JSON VK directly.
var convertVKCmd = &cobra.Command{
	Use:   "convert-vk <verification_key.json> [output.bin]",
	Short: "Convert a SnarkJS verification key JSON to gnark binary format",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]
		outputFile := "verification_key.bin"
		if len(args) > 1 {
			outputFile = args[1]
		}

		data, err := os.ReadFile(inputFile)
		if err != nil {
			printError("reading input file: " + err.Error())
			os.Exit(1)
		}

		circomVk, err := parser.UnmarshalCircomVerificationKeyJSON(data)
		if err != nil {
			printError("unmarshalling circom vk: " + err.Error())
			os.Exit(1)
		}

		gnarkVk, err := parser.ConvertVerificationKey(circomVk)
		if err != nil {
			printError("converting to gnark vk: " + err.Error())
			os.Exit(1)
		}

		f, err := os.Create(outputFile)
		if err != nil {
			printError("creating output file: " + err.Error())
			os.Exit(1)
		}
		defer f.Close()

		if _, err := gnarkVk.WriteTo(f); err != nil {
			printError("writing binary vk: " + err.Error())
			os.Exit(1)
		}

		abs, _ := filepath.Abs(outputFile)
		printSuccess(fmt.Sprintf("Converted to gnark binary: %s", abs))
	},
}

func init() {
	rootCmd.AddCommand(convertVKCmd)
}
