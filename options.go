package resume2pdf

import (
	"log/slog"
	"time"

	"github.com/alnah/go-resume2pdf/internal/assets"
)

// Defaults used when no option overrides them.
const (
	DefaultTimeout       = 15 * time.Second
	DefaultWorkspaceRoot = "temp"
	DefaultTemplate      = assets.DefaultTemplateName
	DefaultCompiler      = "pdflatex"
)

// TemplateLoader supplies document templates by name. Templates must hold
// the content placeholder %[[[INSERT CONTENT HERE]]]% exactly once.
type TemplateLoader interface {
	LoadTemplate(name string) (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the per-job compilation deadline.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resume2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.timeout = d
	}
}

// WithCompiler sets the compiler executable and extra arguments placed
// before the standard flags.
func WithCompiler(name string, args ...string) Option {
	return func(c *Converter) {
		c.runner.Compiler = name
		c.runner.Args = args
	}
}

// WithPasses runs the compiler n times per job under one deadline, for
// documents that need cross-references resolved. Values below 1 mean 1.
func WithPasses(n int) Option {
	return func(c *Converter) {
		c.runner.Passes = n
	}
}

// WithConcurrency sets how many jobs may compile at once. Zero or negative
// picks a default from GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// WithWorkspaceRoot sets the directory job workspaces are created under.
func WithWorkspaceRoot(dir string) Option {
	return func(c *Converter) {
		c.workspaceRoot = dir
	}
}

// WithTemplate selects the template by name.
func WithTemplate(name string) Option {
	return func(c *Converter) {
		c.templateName = name
	}
}

// WithAssetPath loads templates from {path}/templates/{name}.tex, falling
// back to the built-in templates.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.assetPath = path
	}
}

// WithTemplateLoader replaces template loading entirely.
func WithTemplateLoader(l TemplateLoader) Option {
	return func(c *Converter) {
		c.loader = l
	}
}

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
