package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// compilerFlags holds LaTeX compiler flags.
type compilerFlags struct {
	command string
	args    []string
	timeout time.Duration
	passes  int
	workers int
}

// workspaceFlags holds workspace and reaper flags.
type workspaceFlags struct {
	root          string
	maxAge        time.Duration
	sweepInterval time.Duration
}

// templateFlags holds template selection flags.
type templateFlags struct {
	name      string
	assetPath string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	compiler  compilerFlags
	workspace workspaceFlags
	template  templateFlags
	output    string
}

// latexFlags holds all flags for the latex command.
type latexFlags struct {
	common   commonFlags
	template templateFlags
	output   string
}

// sweepFlags holds all flags for the sweep command.
type sweepFlags struct {
	common    commonFlags
	workspace workspaceFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common       commonFlags
	compiler     compilerFlags
	workspace    workspaceFlags
	template     templateFlags
	addr         string
	maxBodyBytes int64
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common    commonFlags
	compiler  compilerFlags
	workspace workspaceFlags
	template  templateFlags
	json      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline details to stderr")
}

// addCompilerFlags adds compiler flags to a FlagSet.
func addCompilerFlags(fs *flag.FlagSet, f *compilerFlags) {
	fs.StringVar(&f.command, "compiler", "", "LaTeX compiler executable (default pdflatex)")
	fs.StringArrayVar(&f.args, "compiler-arg", nil, "extra compiler argument (repeatable)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "compilation timeout per job (e.g. 30s, 2m)")
	fs.IntVar(&f.passes, "passes", 0, "compiler passes per job (1-5)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent compilations (0 = auto)")
}

// addWorkspaceRootFlag adds the workspace root flag to a FlagSet.
func addWorkspaceRootFlag(fs *flag.FlagSet, f *workspaceFlags) {
	fs.StringVar(&f.root, "workspace-root", "", "directory for job workspaces")
}

// addReaperFlags adds stale-workspace flags to a FlagSet.
func addReaperFlags(fs *flag.FlagSet, f *workspaceFlags) {
	fs.DurationVar(&f.maxAge, "max-age", 0, "remove workspaces older than this (default 30m)")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVar(&f.name, "template", "", "template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory holding templates/")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (\"-\" = stdout)")
	addCommonFlags(fs, &f.common)
	addCompilerFlags(fs, &f.compiler)
	addWorkspaceRootFlag(fs, &f.workspace)
	addTemplateFlags(fs, &f.template)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseLatexFlags parses latex command flags and returns positional args.
func parseLatexFlags(args []string, stderr io.Writer) (*latexFlags, []string, error) {
	f := &latexFlags{}
	fs := newFlagSet("latex", printLatexUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output .tex path (default stdout)")
	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.template)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseSweepFlags parses sweep command flags and returns positional args.
func parseSweepFlags(args []string, stderr io.Writer) (*sweepFlags, []string, error) {
	f := &sweepFlags{}
	fs := newFlagSet("sweep", printSweepUsage, stderr)

	addCommonFlags(fs, &f.common)
	addWorkspaceRootFlag(fs, &f.workspace)
	addReaperFlags(fs, &f.workspace)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", printServeUsage, stderr)

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8000)")
	fs.Int64Var(&f.maxBodyBytes, "max-body", 0, "request body limit in bytes (default 1 MiB)")
	fs.DurationVar(&f.workspace.sweepInterval, "sweep-interval", 0, "stale-workspace sweep period (default 5m)")
	addCommonFlags(fs, &f.common)
	addCompilerFlags(fs, &f.compiler)
	addWorkspaceRootFlag(fs, &f.workspace)
	addReaperFlags(fs, &f.workspace)
	addTemplateFlags(fs, &f.template)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags and returns positional args.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, []string, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", printDoctorUsage, stderr)

	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	addCommonFlags(fs, &f.common)
	addCompilerFlags(fs, &f.compiler)
	addWorkspaceRootFlag(fs, &f.workspace)
	addTemplateFlags(fs, &f.template)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
