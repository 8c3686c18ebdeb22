package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/servicecheck/pkg/check"
)

// Summary lines printed on stdout.
const (
	MsgAllRunning = "All services are running"
	MsgNotRunning = "One or more services are not running"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

// Per-check lines only ever go to stderr, so colour follows stderr.
func init() {
	if !supportscolor.Stderr().SupportsColor {
		green, red, dim, reset = "", "", "", ""
	}
}

// Summary returns the summary line for an overall status.
func Summary(ok bool) string {
	if ok {
		return MsgAllRunning
	}
	return MsgNotRunning
}

// PrintSummary writes the single summary line. It is never coloured.
func PrintSummary(w io.Writer, ok bool) {
	_, _ = fmt.Fprintln(w, Summary(ok))
}

// PrintResult outputs a check result with colored status.
func PrintResult(w io.Writer, r check.Result) {
	if r.OK() {
		_, _ = fmt.Fprintf(w, "%s[OK]%s %s\n", green, reset, formatLabel(r.Name))
	} else {
		_, _ = fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, formatLabel(r.Name))
	}
	for _, d := range r.Details {
		_, _ = fmt.Fprintf(w, "      %s\n", d)
	}
}

// PrintResults outputs every result in order.
func PrintResults(w io.Writer, results []check.Result) {
	for _, r := range results {
		PrintResult(w, r)
	}
}

// formatLabel dims the "label:" prefix of s, if it has one.
func formatLabel(s string) string {
	label, rest, found := strings.Cut(s, ":")
	if !found {
		return s
	}
	return dim + label + ":" + reset + rest
}
