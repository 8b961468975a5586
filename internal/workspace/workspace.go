// Package workspace manages the per-job directories the compiler runs in:
// creation under a shared root, writing the LaTeX source, deferred removal
// after the result is delivered, and sweeping directories abandoned by
// crashed jobs.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Fixed file names inside a workspace. The artifact name follows from the
// source name because the compiler derives its output from it.
const (
	SourceName   = "resume.tex"
	ArtifactName = "resume.pdf"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Sentinel errors for workspace operations.
var (
	// ErrCreate indicates the workspace directory could not be created.
	ErrCreate = errors.New("workspace create failed")

	// ErrWrite indicates the source file could not be written.
	ErrWrite = errors.New("workspace write failed")
)

// Workspace is one job's private directory.
type Workspace struct {
	ID  string
	Dir string

	destroyOnce sync.Once
}

// SourcePath is the LaTeX source file inside the workspace.
func (w *Workspace) SourcePath() string {
	return filepath.Join(w.Dir, SourceName)
}

// ArtifactPath is where the compiler writes the PDF.
func (w *Workspace) ArtifactPath() string {
	return filepath.Join(w.Dir, ArtifactName)
}

// Manager creates and destroys workspaces under a shared root directory.
type Manager struct {
	root   string
	logger *slog.Logger
}

// NewManager returns a Manager rooted at root. A nil logger discards output.
func NewManager(root string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{root: root, logger: logger}
}

// Root returns the directory workspaces are created in.
func (m *Manager) Root() string {
	return m.root
}

// Create makes a new uniquely named workspace. The root is created on
// demand; the workspace directory itself must not exist yet.
func (m *Manager) Create() (*Workspace, error) {
	if err := os.MkdirAll(m.root, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreate, err)
	}

	id := uuid.NewString()
	dir := filepath.Join(m.root, id)
	if err := os.Mkdir(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreate, err)
	}

	return &Workspace{ID: id, Dir: dir}, nil
}

// WriteSource writes content to the workspace's source file and returns
// its path.
func (m *Manager) WriteSource(ws *Workspace, content string) (string, error) {
	path := ws.SourcePath()
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}

// Destroy removes the workspace and everything in it. Only the first call
// acts; removal failures are logged and never returned.
func (m *Manager) Destroy(ws *Workspace) {
	ws.destroyOnce.Do(func() {
		if err := m.remove(ws.Dir); err != nil {
			m.logger.Warn("workspace cleanup failed", "job_id", ws.ID, "path", ws.Dir, "error", err)
			return
		}
		m.logger.Debug("workspace removed", "job_id", ws.ID)
	})
}

// remove deletes dir recursively; a missing dir is not an error.
func (m *Manager) remove(dir string) error {
	return os.RemoveAll(dir)
}
