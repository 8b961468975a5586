// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForCompilerNotFound returns hints for a LaTeX compiler missing from PATH.
func ForCompilerNotFound(compiler string) string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "add a TeX distribution to the image (e.g. texlive-latex-extra)")
	} else {
		hints = append(hints, "install TeX Live or MiKTeX so "+compiler+" is on PATH")
	}

	if os.Getenv("RESUME2PDF_COMPILER") == "" {
		hints = append(hints, "or point --compiler / RESUME2PDF_COMPILER at the executable")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow compilations.
func ForTimeout() string {
	return format("for long resumes or several passes, use --timeout flag")
}

// ForCompilationFailed suggests inspecting the generated source.
func ForCompilationFailed(input string) string {
	if input == "" {
		return format("run 'resume2pdf latex <file>' to inspect the generated source")
	}
	return format("run 'resume2pdf latex " + input + "' to inspect the generated source")
}

// ForMalformed explains the accepted input shapes.
func ForMalformed() string {
	return format("expected a list of sections, or {\"sections\": [...]}; string fragments are read as Markdown")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config dir.
func ForConfigNotFound(name string) string {
	hint := "use --config /path/to/file.yaml"

	if name != "" && !fileutil.IsFilePath(name) {
		if dir, err := os.UserConfigDir(); err == nil {
			hint += " or create " + filepath.Join(dir, "go-resume2pdf", name+".yaml")
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForWorkspaceRoot returns hints for an unusable workspace root.
func ForWorkspaceRoot() string {
	return format("set --workspace-root or RESUME2PDF_WORKSPACE_ROOT to a writable directory")
}

// ForTemplateNotFound returns hints for template not found errors.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
