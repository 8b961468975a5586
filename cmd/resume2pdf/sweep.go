package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// errSweepIncomplete reports workspaces that could not be removed.
var errSweepIncomplete = errors.New("sweep incomplete")

// runSweep removes stale workspaces once and reports what it did.
func runSweep(args []string, env *Environment) error {
	f, positional, err := parseSweepFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: sweep takes no arguments", ErrUsage)
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		return withHint(err, configHint(err, &f.common))
	}
	mergeWorkspaceFlags(&f.workspace, cfg)

	conv, err := newConverter(cfg, newLogger(env.Stderr, &f.common))
	if err != nil {
		return explain(err, cfg, "")
	}
	defer conv.Close()

	maxAge := cfg.Workspace.MaxAge.Std()
	report := conv.Sweep(maxAge)

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Swept %s: %d scanned, %d removed (older than %v)\n",
			conv.WorkspaceRoot(), report.Scanned, report.Removed, maxAge)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%w: %d workspaces could not be removed", errSweepIncomplete, report.Failed)
	}
	return nil
}
