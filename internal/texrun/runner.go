// Package texrun runs an external LaTeX compiler against a job directory
// with a hard deadline. The compiler runs in its own process group with
// captured output; on timeout the whole group is killed.
package texrun

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-resume2pdf/internal/process"
)

// Defaults applied to zero-valued Runner fields.
const (
	DefaultCompiler  = "pdflatex"
	DefaultTimeout   = 15 * time.Second
	DefaultWaitDelay = 2 * time.Second
)

var errArtifactMissing = errors.New("no PDF produced")

// Artifact is the outcome of a successful run.
type Artifact struct {
	Path    string
	Passes  int
	Elapsed time.Duration
}

// Runner invokes the compiler as
//
//	<Compiler> <Args...> -interaction=nonstopmode -output-directory <dir> <source>
type Runner struct {
	Compiler  string        // executable name or path; DefaultCompiler if empty
	Args      []string      // extra arguments placed before the standard flags
	Passes    int           // invocations per job, all under one deadline; 1 if < 1
	WaitDelay time.Duration // bound on Wait after the group is killed
	Logger    *slog.Logger
}

// Run compiles job within timeout (DefaultTimeout if non-positive). The
// run succeeds only if every pass exits zero and the artifact exists.
// Failures return *CompilationError; a deadline returns ErrTimeout. A job
// runs at most once.
func (r *Runner) Run(ctx context.Context, job *Job, timeout time.Duration) (*Artifact, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if err := job.start(); err != nil {
		return nil, err
	}
	logger := r.logger().With("job_id", job.ID)
	logger.Debug("compilation started", "state", StateRunning, "passes", r.passes())

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	began := time.Now()
	out := newHeadBuffer(outputCapacity)
	for pass := 1; pass <= r.passes(); pass++ {
		out.Reset()
		err := r.invoke(ctx, job, out)
		if err == nil {
			continue
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			job.finish(StateTimedOut)
			logger.Debug("compilation timed out", "state", StateTimedOut, "pass", pass)
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		job.finish(StateFailed)
		logger.Debug("compilation failed", "state", StateFailed, "pass", pass, "error", err)
		return nil, &CompilationError{ExitCode: exitCode(err), Excerpt: out.Excerpt(), Err: causeOf(err)}
	}

	path := job.ArtifactPath()
	if _, err := os.Stat(path); err != nil {
		job.finish(StateFailed)
		cause := err
		if errors.Is(err, fs.ErrNotExist) {
			cause = errArtifactMissing
		}
		logger.Debug("compilation failed", "state", StateFailed, "error", cause)
		return nil, &CompilationError{Excerpt: out.Excerpt(), Err: cause}
	}

	job.finish(StateSucceeded)
	elapsed := time.Since(began)
	logger.Debug("compilation succeeded", "state", StateSucceeded, "elapsed", elapsed)
	return &Artifact{Path: path, Passes: r.passes(), Elapsed: elapsed}, nil
}

func (r *Runner) invoke(ctx context.Context, job *Job, out *headBuffer) error {
	args := make([]string, 0, len(r.Args)+4)
	args = append(args, r.Args...)
	args = append(args, "-interaction=nonstopmode", "-output-directory", job.Dir, job.Source)

	cmd := exec.CommandContext(ctx, r.compiler(), args...)
	cmd.Dir = job.Dir
	cmd.Stdout = out
	cmd.Stderr = out
	process.Isolate(cmd)
	cmd.Cancel = process.CancelGroup(cmd)
	cmd.WaitDelay = r.waitDelay()

	return cmd.Run()
}

func (r *Runner) compiler() string {
	if r.Compiler == "" {
		return DefaultCompiler
	}
	return r.Compiler
}

func (r *Runner) passes() int {
	if r.Passes < 1 {
		return 1
	}
	return r.Passes
}

func (r *Runner) waitDelay() time.Duration {
	if r.WaitDelay <= 0 {
		return DefaultWaitDelay
	}
	return r.WaitDelay
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// causeOf keeps errors that explain a launch failure and drops plain exit
// statuses, which the exit code already describes.
func causeOf(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
