package main

import (
	"errors"
	"fmt"
	"os/exec"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/config"
	"github.com/alnah/go-resume2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read resume file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// hintedError appends an actionable hint to an error message while keeping
// the error chain intact for exit code mapping.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// explain attaches the hint matching err. cfg may be nil; input is the
// resume file the command was given, if any.
func explain(err error, cfg *config.Config, input string) error {
	compiler := resume2pdf.DefaultCompiler
	if cfg != nil {
		compiler = cfg.Compiler.Command
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, exec.ErrNotFound):
		return withHint(err, hints.ForCompilerNotFound(compiler))
	case errors.Is(err, resume2pdf.ErrCompilationTimeout):
		return withHint(err, hints.ForTimeout())
	case errors.Is(err, resume2pdf.ErrCompilationFailed):
		return withHint(err, hints.ForCompilationFailed(input))
	case errors.Is(err, resume2pdf.ErrMalformedDocument):
		return withHint(err, hints.ForMalformed())
	case errors.Is(err, resume2pdf.ErrTemplateMissing):
		return withHint(err, hints.ForTemplateNotFound(assets.NewEmbeddedLoader().Names()))
	case errors.Is(err, resume2pdf.ErrWorkspaceCreate), errors.Is(err, resume2pdf.ErrWorkspaceWrite):
		return withHint(err, hints.ForWorkspaceRoot())
	case errors.Is(err, ErrWriteOutput):
		return withHint(err, hints.ForOutputDirectory())
	default:
		return err
	}
}

// usageError wraps a flag parsing failure so it maps to ExitUsage.
func usageError(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
