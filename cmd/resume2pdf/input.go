package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resume2pdf/resume"
)

// singleInput returns the one positional argument a command expects.
func singleInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one resume file, got %d", ErrUsage, len(args))
	}
}

// readResume loads a resume file. YAML is recognized by extension;
// everything else is parsed as the JSON editor payload.
func readResume(path string) (*resume.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return resume.ParseYAML(data)
	default:
		return resume.Parse(data)
	}
}
