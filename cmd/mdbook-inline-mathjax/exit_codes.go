package main

import (
	"errors"
	"os"

	"github.com/alnah/mdbook-inline-mathjax/internal/config"
)

// Exit codes for the mdbook-inline-mathjax CLI.
// mdbook only distinguishes zero from non-zero; the rest helps humans and scripts.
const (
	ExitSuccess = 0 // Success, or renderer supported
	ExitGeneral = 1 // Protocol error, renderer not supported, check findings
	ExitUsage   = 2 // Invalid flags, config, or arguments
	ExitIO      = 3 // File not found, permission denied, broken pipe
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) {
		return ExitUsage
	}

	// Protocol errors (mathjax.ErrMalformedInput, ErrInvalidVersion, ...) and findings
	return ExitGeneral
}
