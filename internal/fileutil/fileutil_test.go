package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic file writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")

	if err := fileutil.WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temp file left behind?)", len(entries))
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o644 {
			t.Errorf("mode = %v, want 0644", info.Mode().Perm())
		}
	}
}

func TestWriteFileAtomic_Errors(t *testing.T) {
	t.Parallel()

	if err := fileutil.WriteFileAtomic("", []byte("x"), 0o644); !errors.Is(err, fileutil.ErrEmptyPath) {
		t.Errorf("empty path error = %v, want ErrEmptyPath", err)
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out.pdf")
	if err := fileutil.WriteFileAtomic(missing, []byte("x"), 0o644); err == nil {
		t.Error("expected error for missing parent directory")
	}
}

// ---------------------------------------------------------------------------
// TestProbeWritable - Directory writability
// ---------------------------------------------------------------------------

func TestProbeWritable(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "root")
	if err := fileutil.ProbeWritable(dir); err != nil {
		t.Fatalf("ProbeWritable() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("probe left %d entries behind", len(entries))
	}

	if err := fileutil.ProbeWritable(""); !errors.Is(err, fileutil.ErrEmptyPath) {
		t.Errorf("empty dir error = %v, want ErrEmptyPath", err)
	}
}

func TestProbeWritable_FileInTheWay(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := fileutil.ProbeWritable(filepath.Join(file, "sub"))
	if !errors.Is(err, fileutil.ErrNotWritable) {
		t.Errorf("ProbeWritable() error = %v, want ErrNotWritable", err)
	}
}

// ---------------------------------------------------------------------------
// TestReplaceExt - Output path derivation
// ---------------------------------------------------------------------------

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"resume.json", "resume.pdf"},
		{"cv/jane.yaml", "cv/jane.pdf"},
		{"noext", "noext.pdf"},
		{"dir.v2/resume", "dir.v2/resume.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.ReplaceExt(tt.path, ".pdf"); got != tt.want {
				t.Errorf("ReplaceExt(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file returns true", testFile, true},
		{"directory returns false", testDir, false},
		{"nonexistent path returns false", filepath.Join(tempDir, "nonexistent"), false},
		{"empty path returns false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - File path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"work.yaml", false},
		{"my-config", false},
		{"./work.yaml", true},
		{"/etc/resume2pdf.yaml", true},
		{`C:\cfg\work.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
