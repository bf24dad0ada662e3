// ABOUTME: Entry point for the xaheen CLI
// ABOUTME: Builds the root command and maps errors to a nonzero exit

package main

import (
	"fmt"
	"os"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
