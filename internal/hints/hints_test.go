package hints

// Notes:
// - ForCompilerNotFound tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func TestForCompilerNotFound_OnHost(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("RESUME2PDF_COMPILER", "")

	hint := ForCompilerNotFound("pdflatex")

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "pdflatex is on PATH") {
		t.Errorf("expected install suggestion naming the compiler, got %q", hint)
	}
	if !strings.Contains(hint, "RESUME2PDF_COMPILER") {
		t.Error("expected RESUME2PDF_COMPILER suggestion")
	}
}

func TestForCompilerNotFound_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("RESUME2PDF_COMPILER", "")

	hint := ForCompilerNotFound("pdflatex")

	if !strings.Contains(hint, "image") {
		t.Errorf("expected image suggestion in container, got %q", hint)
	}
}

func TestForCompilerNotFound_CompilerAlreadySet(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("RESUME2PDF_COMPILER", "/opt/tex/bin/pdflatex")

	hint := ForCompilerNotFound("/opt/tex/bin/pdflatex")

	if strings.Contains(hint, "RESUME2PDF_COMPILER") {
		t.Error("should not suggest RESUME2PDF_COMPILER when already set")
	}
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	hint := ForTimeout()

	if !strings.Contains(hint, "--timeout") {
		t.Error("expected --timeout flag mention")
	}
}

func TestForCompilationFailed(t *testing.T) {
	t.Parallel()

	if hint := ForCompilationFailed("cv.yaml"); !strings.Contains(hint, "resume2pdf latex cv.yaml") {
		t.Errorf("expected command with input, got %q", hint)
	}
	if hint := ForCompilationFailed(""); !strings.Contains(hint, "<file>") {
		t.Errorf("expected placeholder without input, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		contains    string
		notContains string
	}{
		{
			name:     "config name suggests user dir",
			input:    "work",
			contains: "go-resume2pdf",
		},
		{
			name:        "path does not suggest user dir",
			input:       "./work.yaml",
			contains:    "--config",
			notContains: "create",
		},
		{
			name:     "empty name",
			input:    "",
			contains: "--config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.input)

			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.notContains != "" && strings.Contains(hint, tt.notContains) {
				t.Errorf("hint should not contain %q, got %q", tt.notContains, hint)
			}
		})
	}
}

func TestForTemplateNotFound(t *testing.T) {
	t.Parallel()

	if hint := ForTemplateNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForTemplateNotFound([]string{"classic", "default"}); !strings.Contains(hint, "classic, default") {
		t.Errorf("expected template list, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := []string{
		ForTimeout(),
		ForOutputDirectory(),
		ForWorkspaceRoot(),
		ForMalformed(),
		ForCompilationFailed("x.json"),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
