package app

import (
	"context"
	"errors"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/openphoto-utils/internal/config"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitUsage reports bad arguments or configuration, like flag parsing
	// errors.
	ExitUsage = 2
	// ExitInterrupted follows the shell convention for SIGINT.
	ExitInterrupted = 130
)

// ExitCode maps the error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case IsUsageError(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// IsUsageError reports whether err was caused by the command-line or the
// configuration rather than by the work itself.
func IsUsageError(err error) bool {
	return config.IsArgumentError(err)
}
