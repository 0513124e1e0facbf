package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// printHeader/printSection/printSuccess/printError are kept from the
// teacher's cmd/jesuit/verify.go print helpers, unchanged in shape.

func printHeader(msg string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n%s\n%s%s\n%s\n",
		cyan(strings.Repeat("=", 64)),
		strings.Repeat(" ", (64-len(msg))/2), msg,
		cyan(strings.Repeat("=", 64)))
}

func printSection(msg string) {
	blue := color.New(color.FgBlue).SprintFunc()
	fmt.Printf("\n%s %s %s\n",
		blue(strings.Repeat("=", (64-len(msg)-2)/2)),
		msg,
		blue(strings.Repeat("=", (64-len(msg)-2)/2)))
}

func printSuccess(msg string) {
	fmt.Printf("%s✔  %s\n", color.GreenString(""), msg)
}

func printError(msg string) {
	fmt.Printf("%s✖  [ERROR] %s\n", color.RedString(""), msg)
}
