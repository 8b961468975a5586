// Package config loads the resume2pdf YAML configuration: compiler,
// workspace, template and server settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-yaml"

	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/fileutil"
	"github.com/alnah/go-resume2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// configDirName is the directory under the user config dir searched for
// named configs.
const configDirName = "go-resume2pdf"

// Defaults.
const (
	DefaultCompiler      = "pdflatex"
	DefaultTimeout       = 15 * time.Second
	DefaultPasses        = 1
	DefaultWorkspaceRoot = "./temp"
	DefaultMaxAge        = 30 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
	DefaultTemplate      = "default"
	DefaultAddr          = ":8000"
	DefaultMaxBodyBytes  = 1 << 20
)

// Duration is a time.Duration written in YAML as "15s", "30m" or "1h30m".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration in time.Duration string form.
func (d Duration) MarshalYAML() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all settings. Zero-valued fields take their defaults.
type Config struct {
	Compiler  CompilerConfig  `yaml:"compiler"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Template  TemplateConfig  `yaml:"template"`
	Server    ServerConfig    `yaml:"server"`
}

// CompilerConfig controls the external LaTeX compiler.
type CompilerConfig struct {
	Command string   `yaml:"command"` // executable name or path
	Args    []string `yaml:"args"`    // extra arguments before the standard flags
	Timeout Duration `yaml:"timeout"` // per job, all passes included
	Passes  int      `yaml:"passes"`
	Workers int      `yaml:"workers"` // 0 = from GOMAXPROCS
}

// WorkspaceConfig controls job directories and the stale-workspace reaper.
type WorkspaceConfig struct {
	Root          string   `yaml:"root"`
	MaxAge        Duration `yaml:"maxAge"`
	SweepInterval Duration `yaml:"sweepInterval"`
}

// TemplateConfig selects the document template.
type TemplateConfig struct {
	Name      string `yaml:"name"`
	AssetPath string `yaml:"assetPath"` // empty = embedded templates only
}

// ServerConfig controls the HTTP adapter.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Compiler.Command, DefaultCompiler)
	setDefault(&c.Compiler.Timeout, Duration(DefaultTimeout))
	setDefault(&c.Compiler.Passes, DefaultPasses)
	setDefault(&c.Workspace.Root, DefaultWorkspaceRoot)
	setDefault(&c.Workspace.MaxAge, Duration(DefaultMaxAge))
	setDefault(&c.Workspace.SweepInterval, Duration(DefaultSweepInterval))
	setDefault(&c.Template.Name, DefaultTemplate)
	setDefault(&c.Server.Addr, DefaultAddr)
	setDefault(&c.Server.MaxBodyBytes, DefaultMaxBodyBytes)
}

func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// Validate checks ranges and names. Called by LoadConfig, and by callers
// that build or override a Config themselves.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Compiler),
		validation.Field(&c.Workspace),
		validation.Field(&c.Template),
		validation.Field(&c.Server),
	)
	if err == nil {
		err = validation.ValidateStruct(c,
			validation.Field(&c.Workspace, validation.By(c.outlivesJobs)),
		)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// outlivesJobs rejects a reaper threshold that a running job can reach.
func (c *Config) outlivesJobs(value any) error {
	ws, _ := value.(WorkspaceConfig)
	if ws.MaxAge <= c.Compiler.Timeout {
		return fmt.Errorf("maxAge %v must exceed compiler timeout %v",
			ws.MaxAge.Std(), c.Compiler.Timeout.Std())
	}
	return nil
}

// Validate implements validation.Validatable.
func (c CompilerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Command, validation.Required, validation.Length(1, 1024)),
		validation.Field(&c.Args, validation.Length(0, 32)),
		validation.Field(&c.Timeout, validation.Required,
			validation.Min(Duration(time.Second)), validation.Max(Duration(10*time.Minute))),
		validation.Field(&c.Passes, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(64)),
	)
}

// Validate implements validation.Validatable.
func (w WorkspaceConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Root, validation.Required, validation.Length(1, 4096)),
		validation.Field(&w.MaxAge, validation.Required, validation.Min(Duration(time.Minute))),
		validation.Field(&w.SweepInterval, validation.Min(Duration(time.Second))),
	)
}

// Validate implements validation.Validatable.
func (t TemplateConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.By(func(value any) error {
			return assets.ValidateAssetName(value.(string))
		})),
		validation.Field(&t.AssetPath, validation.Length(0, 4096)),
	)
}

// Validate implements validation.Validatable.
func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required, validation.Length(1, 256)),
		validation.Field(&s.MaxBodyBytes, validation.Required,
			validation.Min(int64(1<<10)), validation.Max(int64(64<<20))),
	)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-resume2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
