package main

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/vertti/servicecheck/pkg/check"
	"github.com/vertti/servicecheck/pkg/output"
	"github.com/vertti/servicecheck/pkg/portcheck"
)

// ErrCheckFailed is returned when at least one port is unreachable.
// The returned error causes main to exit with code 1.
var ErrCheckFailed = errors.New("check failed")

// newChecker builds the port checker; tests swap it to probe ephemeral ports.
var newChecker = portcheck.New

func runChecks(cmd *cobra.Command, _ []string) error {
	logger := hclog.NewNullLogger()
	if verbose {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "servicecheck",
			Level:  hclog.Debug,
			Output: cmd.ErrOrStderr(),
		})
	}

	results := newChecker(logger).Results()
	ok := check.AllOK(results)

	if verbose {
		output.PrintResults(cmd.ErrOrStderr(), results)
	}
	output.PrintSummary(cmd.OutOrStdout(), ok)

	if !ok {
		return ErrCheckFailed
	}
	return nil
}
