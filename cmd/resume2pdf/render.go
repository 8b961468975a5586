package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// File permission constants.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// runRender compiles one resume file to PDF.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError(err)
	}

	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		return withHint(err, configHint(err, &f.common))
	}
	mergeCompilerFlags(&f.compiler, cfg)
	mergeWorkspaceFlags(&f.workspace, cfg)
	mergeTemplateFlags(&f.template, cfg)

	doc, err := readResume(input)
	if err != nil {
		return explain(fmt.Errorf("%s: %w", input, err), cfg, input)
	}

	conv, err := newConverter(cfg, newLogger(env.Stderr, &f.common))
	if err != nil {
		return explain(err, cfg, input)
	}
	defer conv.Close()

	start := env.Now()
	res, err := conv.Convert(ctx, doc)
	if err != nil {
		return explain(fmt.Errorf("%s: %w", input, err), cfg, input)
	}

	output := f.output
	if output == "" {
		output = fileutil.ReplaceExt(input, ".pdf")
	}

	if output == "-" {
		if _, err := env.Stdout.Write(res.PDF); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := fileutil.WriteFileAtomic(output, res.PDF, filePermissions); err != nil {
		return explain(fmt.Errorf("%w: %s: %v", ErrWriteOutput, output, err), cfg, input)
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%s, %v)\n", output, pagesLabel(res.Pages), env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

func pagesLabel(n int) string {
	switch n {
	case 0:
		return "page count unknown"
	case 1:
		return "1 page"
	default:
		return fmt.Sprintf("%d pages", n)
	}
}
