package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-resume2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // RESUME2PDF_CONFIG: config file name or path
	Compiler   string        // RESUME2PDF_COMPILER: compiler executable
	Timeout    time.Duration // RESUME2PDF_TIMEOUT: per-job compile timeout

	// Tier 2 - Workspaces and capacity
	WorkspaceRoot string        // RESUME2PDF_WORKSPACE_ROOT: job directory root
	MaxAge        time.Duration // RESUME2PDF_MAX_AGE: stale workspace threshold
	Workers       int           // RESUME2PDF_WORKERS: concurrent compilations

	// Tier 3 - Extended
	Template  string // RESUME2PDF_TEMPLATE: template name
	AssetPath string // RESUME2PDF_ASSET_PATH: custom asset directory
	Addr      string // RESUME2PDF_ADDR: HTTP listen address
}

// knownEnvVars lists valid RESUME2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUME2PDF_CONFIG":         true,
	"RESUME2PDF_COMPILER":       true,
	"RESUME2PDF_TIMEOUT":        true,
	"RESUME2PDF_WORKSPACE_ROOT": true,
	"RESUME2PDF_MAX_AGE":        true,
	"RESUME2PDF_WORKERS":        true,
	"RESUME2PDF_TEMPLATE":       true,
	"RESUME2PDF_ASSET_PATH":     true,
	"RESUME2PDF_ADDR":           true,
	// Read by doctor only
	"RESUME2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("RESUME2PDF_CONFIG"),
		Compiler:      os.Getenv("RESUME2PDF_COMPILER"),
		WorkspaceRoot: os.Getenv("RESUME2PDF_WORKSPACE_ROOT"),
		Template:      os.Getenv("RESUME2PDF_TEMPLATE"),
		AssetPath:     os.Getenv("RESUME2PDF_ASSET_PATH"),
		Addr:          os.Getenv("RESUME2PDF_ADDR"),
	}

	cfg.Timeout = envDuration("RESUME2PDF_TIMEOUT")
	cfg.MaxAge = envDuration("RESUME2PDF_MAX_AGE")

	if workers := os.Getenv("RESUME2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

func envDuration(name string) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// warnUnknownEnvVars logs warnings for unrecognized RESUME2PDF_* variables.
// Helps catch typos like RESUME2PDF_TIMEOUTS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "RESUME2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Compiler != "" {
		cfg.Compiler.Command = env.Compiler
	}
	if env.Timeout > 0 {
		cfg.Compiler.Timeout = config.Duration(env.Timeout)
	}
	if env.Workers > 0 {
		cfg.Compiler.Workers = env.Workers
	}
	if env.WorkspaceRoot != "" {
		cfg.Workspace.Root = env.WorkspaceRoot
	}
	if env.MaxAge > 0 {
		cfg.Workspace.MaxAge = config.Duration(env.MaxAge)
	}
	if env.Template != "" {
		cfg.Template.Name = env.Template
	}
	if env.AssetPath != "" {
		cfg.Template.AssetPath = env.AssetPath
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}
