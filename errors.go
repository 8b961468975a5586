package resume2pdf

import (
	"errors"
	"net/http"
	"os/exec"
	"unicode/utf8"

	"github.com/alnah/go-resume2pdf/internal/assemble"
	"github.com/alnah/go-resume2pdf/internal/texrun"
	"github.com/alnah/go-resume2pdf/internal/workspace"
	"github.com/alnah/go-resume2pdf/richtext"
)

// Sentinel errors for conversion. Every error returned by Convert matches
// exactly one of the first seven with errors.Is.
var (
	// ErrMalformedDocument indicates a rich-text tree of the wrong shape or
	// with an unknown mark. It is the caller's fault.
	ErrMalformedDocument = richtext.ErrMalformed

	// ErrTemplateMissing indicates the document template could not be loaded.
	ErrTemplateMissing = assemble.ErrTemplateMissing

	// ErrPlaceholderMissing indicates the template lacks the content placeholder.
	ErrPlaceholderMissing = assemble.ErrPlaceholderMissing

	// ErrWorkspaceCreate indicates the job directory could not be created.
	ErrWorkspaceCreate = workspace.ErrCreate

	// ErrWorkspaceWrite indicates the LaTeX source could not be written.
	ErrWorkspaceWrite = workspace.ErrWrite

	// ErrCompilationFailed indicates the compiler rejected the input or
	// produced no PDF. See CompilationError for the output excerpt.
	ErrCompilationFailed = texrun.ErrFailed

	// ErrCompilationTimeout indicates the compiler was killed at the deadline.
	ErrCompilationTimeout = texrun.ErrTimeout

	// ErrConverterClosed indicates Convert was called after Close.
	ErrConverterClosed = errors.New("converter closed")

	// ErrInvalidAssetPath indicates the custom template directory is unusable.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// CompilationError carries the exit code and a bounded output excerpt of a
// failed compiler run.
type CompilationError = texrun.CompilationError

// maxReasonLen bounds the detail included in Reason.
const maxReasonLen = 600

// Reason renders err as a short message safe to show to an end user.
// Compiler output is limited to the excerpt; internal errors are replaced
// by a generic message.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	var ce *CompilationError
	switch {
	case errors.Is(err, ErrMalformedDocument):
		return bound("invalid resume document: " + err.Error())
	case errors.As(err, &ce):
		switch {
		case errors.Is(err, exec.ErrNotFound):
			return "LaTeX compilation failed: compiler not found"
		case ce.Excerpt != "":
			return "LaTeX compilation failed: " + ce.Excerpt
		default:
			return "LaTeX compilation failed"
		}
	case errors.Is(err, ErrCompilationTimeout):
		return bound("LaTeX " + err.Error())
	case errors.Is(err, ErrCompilationFailed):
		return "LaTeX compilation failed"
	case errors.Is(err, ErrTemplateMissing), errors.Is(err, ErrPlaceholderMissing):
		return "PDF generation failed: document template unavailable"
	case errors.Is(err, ErrWorkspaceCreate), errors.Is(err, ErrWorkspaceWrite):
		return "PDF generation failed: could not prepare workspace"
	case errors.Is(err, ErrConverterClosed):
		return "PDF generation failed: service shutting down"
	default:
		return "PDF generation failed"
	}
}

// StatusCode maps err to an HTTP status: 400 for malformed documents, 500
// for everything else, 200 for nil.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMalformedDocument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func bound(s string) string {
	if len(s) <= maxReasonLen {
		return s
	}
	cut := maxReasonLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
