package workspace

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestManager - Create, write, destroy
// ---------------------------------------------------------------------------

func TestManager_Lifecycle(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "temp")
	m := NewManager(root, nil)

	ws, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if filepath.Dir(ws.Dir) != root || filepath.Base(ws.Dir) != ws.ID {
		t.Errorf("workspace dir %q not <root>/<id>", ws.Dir)
	}

	path, err := m.WriteSource(ws, `\documentclass{article}`)
	if err != nil {
		t.Fatalf("WriteSource() error = %v", err)
	}
	if path != filepath.Join(ws.Dir, SourceName) {
		t.Errorf("WriteSource() path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != `\documentclass{article}` {
		t.Errorf("source file = %q, %v", got, err)
	}

	m.Destroy(ws)
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after Destroy: %v", err)
	}

	// Idempotent.
	m.Destroy(ws)
	m.Destroy(&Workspace{ID: "gone", Dir: filepath.Join(root, "gone")})
}

func TestManager_CreateUnique(t *testing.T) {
	t.Parallel()

	m := NewManager(t.TempDir(), nil)

	const n = 50
	var (
		mu   sync.Mutex
		seen = make(map[string]bool, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := m.Create()
			if err != nil {
				t.Errorf("Create() error = %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[ws.Dir] {
				t.Errorf("duplicate workspace %q", ws.Dir)
			}
			seen[ws.Dir] = true
		}()
	}
	wg.Wait()
}

func TestManager_Errors(t *testing.T) {
	t.Parallel()

	t.Run("root is a file", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := NewManager(file, nil).Create(); !errors.Is(err, ErrCreate) {
			t.Errorf("Create() error = %v, want ErrCreate", err)
		}
	})

	t.Run("workspace removed before write", func(t *testing.T) {
		t.Parallel()

		m := NewManager(t.TempDir(), nil)
		ws, err := m.Create()
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := os.Remove(ws.Dir); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := m.WriteSource(ws, "x"); !errors.Is(err, ErrWrite) {
			t.Errorf("WriteSource() error = %v, want ErrWrite", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestJanitor - Deferred destruction
// ---------------------------------------------------------------------------

func TestJanitor(t *testing.T) {
	t.Parallel()

	m := NewManager(t.TempDir(), nil)
	j := NewJanitor(m)

	var spaces []*Workspace
	for range 5 {
		ws, err := m.Create()
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		spaces = append(spaces, ws)
		j.Schedule(ws)
	}
	j.Close()

	for _, ws := range spaces {
		if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
			t.Errorf("workspace %s survived Close", ws.ID)
		}
	}

	// After Close, scheduling destroys inline.
	ws, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	j.Schedule(ws)
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Error("Schedule after Close did not destroy inline")
	}
}

// ---------------------------------------------------------------------------
// TestReaper - Stale workspace sweeps
// ---------------------------------------------------------------------------

func mkdirAged(t *testing.T, root, name string, mtime time.Time) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, SourceName), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(dir, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return dir
}

func TestReaper_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	root := t.TempDir()

	old := mkdirAged(t, root, "old", now.Add(-2*time.Hour))
	edge := mkdirAged(t, root, "edge", now.Add(-30*time.Minute))
	fresh := mkdirAged(t, root, "fresh", now.Add(-time.Minute))
	stray := filepath.Join(root, "stray.txt")
	if err := os.WriteFile(stray, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(stray, now.Add(-time.Hour*24), now.Add(-time.Hour*24)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r := NewReaper(NewManager(root, nil))
	r.now = func() time.Time { return now }

	report := r.Sweep(30 * time.Minute)
	if report != (SweepReport{Scanned: 3, Removed: 1}) {
		t.Errorf("Sweep() = %+v, want Scanned=3 Removed=1", report)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale workspace survived sweep")
	}
	for _, path := range []string{edge, fresh, stray} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s removed by sweep: %v", path, err)
		}
	}
}

func TestReaper_SweepMissingRoot(t *testing.T) {
	t.Parallel()

	r := NewReaper(NewManager(filepath.Join(t.TempDir(), "absent"), nil))
	if report := r.Sweep(time.Minute); report != (SweepReport{}) {
		t.Errorf("Sweep() = %+v, want empty report", report)
	}
}

func TestReaper_SweepContinuesPastFailures(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits do not block removal on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	now := time.Now()
	root := t.TempDir()

	locked := mkdirAged(t, root, "a-locked", now.Add(-time.Hour))
	inner := filepath.Join(locked, "inner")
	if err := os.Mkdir(inner, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inner, "f"), nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chmod(inner, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(inner, 0o750) })
	if err := os.Chtimes(locked, now.Add(-time.Hour), now.Add(-time.Hour)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	other := mkdirAged(t, root, "b-stale", now.Add(-time.Hour))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	report := NewReaper(NewManager(root, logger)).Sweep(time.Minute)

	if report.Failed != 1 || report.Removed != 1 {
		t.Errorf("Sweep() = %+v, want Failed=1 Removed=1", report)
	}
	if _, err := os.Stat(other); !os.IsNotExist(err) {
		t.Error("sweep stopped at the failing entry")
	}
	if !strings.Contains(logs.String(), "stale workspace cleanup failed") {
		t.Errorf("failure not logged: %s", logs.String())
	}
}

func TestReaper_Run(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m := NewManager(root, nil)
	r := NewReaper(m)

	stale := mkdirAged(t, root, "stale", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, 10*time.Millisecond, 30*time.Minute)
		close(done)
	}()

	// The first sweep runs immediately.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(stale); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Run() did not sweep")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Later ticks pick up new stale entries.
	late := mkdirAged(t, root, "late", time.Now().Add(-time.Hour))
	deadline = time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(late); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Run() did not sweep on tick")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
