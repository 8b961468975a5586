package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-resume2pdf/internal/fileutil"
)

// runLatex prints the assembled LaTeX source without compiling it.
func runLatex(args []string, env *Environment) error {
	f, positional, err := parseLatexFlags(args, env.Stderr)
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

	src, err := conv.LaTeX(doc)
	if err != nil {
		return explain(fmt.Errorf("%s: %w", input, err), cfg, input)
	}

	if f.output == "" || f.output == "-" {
		_, err := io.WriteString(env.Stdout, src)
		return err
	}
	if err := fileutil.WriteFileAtomic(f.output, []byte(src), filePermissions); err != nil {
		return explain(fmt.Errorf("%w: %s: %v", ErrWriteOutput, f.output, err), cfg, input)
	}
	return nil
}
