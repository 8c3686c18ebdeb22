package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "servicecheck",
	Short: "Liveness probe for the local services on ports 8001-8003",
	Long: "servicecheck tries one TCP connection to each of localhost:8001, 8002 and 8003.\n" +
		"It prints a single summary line and exits 0 when all three accept, 1 otherwise.",
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runChecks,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print per-port results and debug logs to stderr")
}
