// Package report writes the human-readable run output: progress lines and
// broken-link lines to stdout, mirrored into an error-log file when one is
// configured. Diagnostics that the original only showed under --verbose are
// not handled here; those are debug-level log events.
package report

import (
	"fmt"
	"io"
)

type Reporter struct {
	out     io.Writer
	verbose bool

	errLog  io.Writer // nil when no error file is configured
	errPath string
}

func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// SetErrorLog mirrors document headers and broken-link lines into w. path is
// only used for the end-of-run location notice.
func (r *Reporter) SetErrorLog(w io.Writer, path string) {
	r.errLog = w
	r.errPath = path
}

func (r *Reporter) ListingSize(n int) {
	fmt.Fprintln(r.out, "No. of files to be checked:", n)
}

func (r *Reporter) Checking(name string) {
	fmt.Fprintf(r.out, "\n\nChecking: %s\n", name)
}

func (r *Reporter) BaseURL(base string) {
	fmt.Fprintln(r.out, "URL:", base)
}

// DocumentHeader is emitted once per document, before its first error line.
func (r *Reporter) DocumentHeader(name, base string) {
	if !r.verbose {
		fmt.Fprintln(r.out, "Errors:")
	}
	if r.errLog != nil {
		fmt.Fprintf(r.errLog, "\n%s\nURL: %s\n", name, base)
	}
}

func (r *Reporter) BrokenLink(label, raw string) {
	fmt.Fprintf(r.out, "%s -\t %s\n", label, raw)
	if r.errLog != nil {
		fmt.Fprintf(r.errLog, "%s -\t %s\n", label, raw)
	}
}

// Summary closes out the run report.
func (r *Reporter) Summary() {
	if r.errLog != nil {
		fmt.Fprintf(r.out, "\nError file present at: %s\n", r.errPath)
	}
}
