package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/internal/config"
	"github.com/alnah/go-resume2pdf/internal/hints"
)

// loadSettings resolves the config file (flag, then RESUME2PDF_CONFIG),
// then applies environment overrides. Flags are merged by the caller.
func loadSettings(common *commonFlags, env *Environment) (*config.Config, error) {
	ec := loadEnvConfig()
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	name := common.config
	if name == "" {
		name = ec.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(ec, cfg)
	return cfg, nil
}

// mergeCompilerFlags applies explicitly set compiler flags to cfg.
func mergeCompilerFlags(f *compilerFlags, cfg *config.Config) {
	if f.command != "" {
		cfg.Compiler.Command = f.command
	}
	if len(f.args) > 0 {
		cfg.Compiler.Args = f.args
	}
	if f.timeout > 0 {
		cfg.Compiler.Timeout = config.Duration(f.timeout)
	}
	if f.passes > 0 {
		cfg.Compiler.Passes = f.passes
	}
	if f.workers != 0 {
		cfg.Compiler.Workers = f.workers
	}
}

// mergeWorkspaceFlags applies explicitly set workspace flags to cfg.
func mergeWorkspaceFlags(f *workspaceFlags, cfg *config.Config) {
	if f.root != "" {
		cfg.Workspace.Root = f.root
	}
	if f.maxAge > 0 {
		cfg.Workspace.MaxAge = config.Duration(f.maxAge)
	}
	if f.sweepInterval > 0 {
		cfg.Workspace.SweepInterval = config.Duration(f.sweepInterval)
	}
}

// mergeTemplateFlags applies explicitly set template flags to cfg.
func mergeTemplateFlags(f *templateFlags, cfg *config.Config) {
	if f.name != "" {
		cfg.Template.Name = f.name
	}
	if f.assetPath != "" {
		cfg.Template.AssetPath = f.assetPath
	}
}

// newLogger writes text logs to w: errors only when quiet, debug when
// verbose, warnings otherwise.
func newLogger(w io.Writer, common *commonFlags) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case common.quiet:
		level = slog.LevelError
	case common.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// converterOptions maps cfg onto Converter options.
func converterOptions(cfg *config.Config, logger *slog.Logger) []resume2pdf.Option {
	opts := []resume2pdf.Option{
		resume2pdf.WithCompiler(cfg.Compiler.Command, cfg.Compiler.Args...),
		resume2pdf.WithTimeout(cfg.Compiler.Timeout.Std()),
		resume2pdf.WithPasses(cfg.Compiler.Passes),
		resume2pdf.WithConcurrency(cfg.Compiler.Workers),
		resume2pdf.WithWorkspaceRoot(cfg.Workspace.Root),
		resume2pdf.WithTemplate(cfg.Template.Name),
		resume2pdf.WithLogger(logger),
	}
	if cfg.Template.AssetPath != "" {
		opts = append(opts, resume2pdf.WithAssetPath(cfg.Template.AssetPath))
	}
	return opts
}

// newConverter validates cfg and builds a Converter from it.
func newConverter(cfg *config.Config, logger *slog.Logger) (*resume2pdf.Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return resume2pdf.NewConverter(converterOptions(cfg, logger)...)
}

// configHint suggests where to put a config file the user named but that
// could not be found.
func configHint(err error, common *commonFlags) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	name := common.config
	if name == "" {
		name = os.Getenv("RESUME2PDF_CONFIG")
	}
	return hints.ForConfigNotFound(name)
}
