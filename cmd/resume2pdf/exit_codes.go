package main

import (
	"errors"
	"os"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/config"
)

// Exit codes for the resume2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful command
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or resume document
	ExitIO       = 3 // File not found, permission denied
	ExitCompiler = 4 // LaTeX compiler failed or timed out
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Compiler errors (exit 4)
	if errors.Is(err, resume2pdf.ErrCompilationFailed) ||
		errors.Is(err, resume2pdf.ErrCompilationTimeout) {
		return ExitCompiler
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, resume2pdf.ErrMalformedDocument) ||
		errors.Is(err, resume2pdf.ErrTemplateMissing) ||
		errors.Is(err, resume2pdf.ErrPlaceholderMissing) ||
		errors.Is(err, resume2pdf.ErrInvalidAssetPath) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, resume2pdf.ErrWorkspaceCreate) ||
		errors.Is(err, resume2pdf.ErrWorkspaceWrite) {
		return ExitIO
	}

	return ExitGeneral
}
