// Package main is the entry point for the lnr CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/lnr-dev/lnr/cmd"
	"github.com/lnr-dev/lnr/internal/logging"
)

// main is the entry point of the application.
// It executes the root command and handles any errors that occur.
func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
