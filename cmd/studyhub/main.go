// ABOUTME: CLI entry point
// ABOUTME: Executes the root command and exits nonzero on error

package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
