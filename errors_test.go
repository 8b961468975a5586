package resume2pdf

import (
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"testing"
)

func TestReasonAndStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantReason string
		wantStatus int
	}{
		{
			name:       "nil",
			err:        nil,
			wantReason: "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed",
			err:        fmt.Errorf("sections[0]: heading: %w: unknown mark %q", ErrMalformedDocument, "strike"),
			wantReason: `invalid resume document: sections[0]: heading: malformed document: unknown mark "strike"`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "compiler output",
			err:        &CompilationError{ExitCode: 1, Excerpt: "! Undefined control sequence."},
			wantReason: "LaTeX compilation failed: ! Undefined control sequence.",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "compiler not found",
			err:        &CompilationError{ExitCode: -1, Err: &exec.Error{Name: "pdflatex", Err: exec.ErrNotFound}},
			wantReason: "LaTeX compilation failed: compiler not found",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "timeout",
			err:        fmt.Errorf("%w after 15s", ErrCompilationTimeout),
			wantReason: "LaTeX compilation timed out after 15s",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "template",
			err:        fmt.Errorf("%w: template %q", ErrPlaceholderMissing, "default"),
			wantReason: "PDF generation failed: document template unavailable",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "workspace",
			err:        fmt.Errorf("%w: permission denied", ErrWorkspaceCreate),
			wantReason: "PDF generation failed: could not prepare workspace",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "internal error hidden",
			err:        errors.New("internal error: runtime error: index out of range /secret/path"),
			wantReason: "PDF generation failed",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Reason(tt.err); got != tt.wantReason {
				t.Errorf("Reason() = %q, want %q", got, tt.wantReason)
			}
			if got := StatusCode(tt.err); got != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestReason_Bounded(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: %s", ErrMalformedDocument, strings.Repeat("é", 2*maxReasonLen))
	got := Reason(err)
	if len(got) > maxReasonLen+len("...") {
		t.Errorf("Reason() length = %d, want <= %d", len(got), maxReasonLen+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated reason should end with ...")
	}
	if !strings.HasPrefix(got, "invalid resume document") {
		t.Errorf("Reason() = %q", got[:40])
	}
}
