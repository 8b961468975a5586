package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a polling
// reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	return &Environment{
		Now:     time.Now,
		Stdout:  stdout,
		Stderr:  stderr,
		Context: context.Background(),
	}, stdout, stderr
}

const sampleJSON = `{"sections_json": [
  {"title": "Experience", "items": [
    {"title": "Engineer", "organization": "Acme", "startDate": "2021", "endDate": "2024",
     "bulletPoints": [{"text": "Shipped **things**", "json": "Shipped **things**"}]}
  ]},
  {"type": "LaTeX", "content": "\\vspace{2pt}"}
]}`

const sampleYAML = `sections:
  - title: Skills
    items:
      - title: Go
        bulletPoints:
          - json: "Concurrency & *testing*"
`

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
