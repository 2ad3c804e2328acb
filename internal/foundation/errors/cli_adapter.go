package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Exit codes returned by the CLI.
const (
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitNotFound   = 4
	ExitConfig     = 7
	ExitSource     = 9
	ExitInternal   = 10
	ExitTransform  = 11
	ExitRuntime    = 12
	exitSuccessful = 0
)

// CLIErrorAdapter reports errors on the terminal and picks the exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor maps err onto a process exit code. Unclassified errors exit 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return exitSuccessful
	}
	c, ok := AsClassified(err)
	if !ok {
		return ExitGeneral
	}
	switch c.Category() {
	case CategoryValidation:
		return ExitUsage
	case CategoryNotFound:
		return ExitNotFound
	case CategoryConfig:
		return ExitConfig
	case CategoryDiscovery, CategoryFileSystem:
		return ExitSource
	case CategoryTransform:
		return ExitTransform
	case CategoryRuntime:
		return ExitRuntime
	case CategoryInternal:
		return ExitInternal
	default:
		return ExitGeneral
	}
}

// FormatError renders the one-line message shown to the user.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	c, ok := AsClassified(err)
	switch {
	case !ok:
		return fmt.Sprintf("Error: %v", err)
	case a.verbose:
		return c.Error()
	case c.Category() == CategoryInternal:
		return "Internal error occurred (use -v for details)"
	case c.Cause() != nil:
		return fmt.Sprintf("Error: %s: %v", c.Message(), c.Cause())
	default:
		return "Error: " + c.Message()
	}
}

// Report logs err when it is fatal, unclassified or verbose output is on,
// prints the user message to w and returns the exit code.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return exitSuccessful
	}

	c, classified := AsClassified(err)
	switch {
	case !classified:
		a.logger.Error("Unclassified error", slog.String("error", err.Error()))
	case a.verbose || c.IsFatal():
		attrs := []slog.Attr{slog.String("category", string(c.Category()))}
		for k, v := range c.context {
			attrs = append(attrs, slog.Any(k, v))
		}
		a.logger.LogAttrs(context.Background(), c.logLevel(), c.Message(), attrs...)
	}

	_, _ = fmt.Fprintln(w, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// HandleError reports err on stderr and exits. It returns when err is nil.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	os.Exit(a.Report(os.Stderr, err))
}
