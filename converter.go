package resume2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-resume2pdf/internal/admission"
	"github.com/alnah/go-resume2pdf/internal/assemble"
	"github.com/alnah/go-resume2pdf/internal/assets"
	"github.com/alnah/go-resume2pdf/internal/pdfinfo"
	"github.com/alnah/go-resume2pdf/internal/texrun"
	"github.com/alnah/go-resume2pdf/internal/workspace"
	"github.com/alnah/go-resume2pdf/resume"
)

// Result is a compiled resume.
type Result struct {
	JobID       string
	PDF         []byte
	LaTeX       string
	Pages       int    // 0 when the PDF could not be inspected
	Filename    string // suggested download name
	Disposition string // Content-Disposition header value
	Elapsed     time.Duration
}

// SweepReport summarizes a stale-workspace sweep.
type SweepReport = workspace.SweepReport

const artifactFilename = workspace.ArtifactName

// Converter compiles resume documents to PDF with an external LaTeX
// compiler. It is safe for concurrent use. Create with NewConverter and
// Close when done.
type Converter struct {
	timeout       time.Duration
	runner        texrun.Runner
	workers       int
	workspaceRoot string
	templateName  string
	assetPath     string
	loader        TemplateLoader
	logger        *slog.Logger

	assembler  *assemble.Assembler
	gate       *admission.Gate
	workspaces *workspace.Manager
	janitor    *workspace.Janitor
	reaper     *workspace.Reaper

	mu      sync.RWMutex
	closed  bool
	jobs    sync.WaitGroup
	bg      sync.WaitGroup
	stopBgs []context.CancelFunc
}

// NewConverter builds a Converter. The template is loaded and checked here,
// so a missing template or placeholder fails at startup.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		timeout:       DefaultTimeout,
		runner:        texrun.Runner{Compiler: DefaultCompiler},
		workspaceRoot: DefaultWorkspaceRoot,
		templateName:  DefaultTemplate,
		logger:        slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		resolver, err := assets.NewResolver(c.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.loader = resolver
	}

	assembler, err := assemble.New(c.loader, c.templateName)
	if err != nil {
		return nil, err
	}

	c.assembler = assembler
	c.runner.Logger = c.logger
	c.gate = admission.NewGate(admission.ResolveSize(c.workers))
	c.workspaces = workspace.NewManager(c.workspaceRoot, c.logger)
	c.janitor = workspace.NewJanitor(c.workspaces)
	c.reaper = workspace.NewReaper(c.workspaces)

	return c, nil
}

// LaTeX assembles doc into a complete LaTeX document without compiling it.
func (c *Converter) LaTeX(doc *resume.Document) (string, error) {
	return c.assembler.Assemble(doc)
}

// Convert assembles doc and compiles it. Assembly errors return before any
// compiler starts. The job then waits for an admission slot; once admitted
// it runs to completion even if ctx ends, and only the compile timeout
// stops it. If ctx ends first, Convert returns ctx.Err() and the job
// cleans up after itself in the background.
func (c *Converter) Convert(ctx context.Context, doc *resume.Document) (*Result, error) {
	source, err := c.LaTeX(doc)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrConverterClosed
	}
	c.jobs.Add(1)
	c.mu.RUnlock()

	if err := c.gate.Acquire(ctx); err != nil {
		c.jobs.Done()
		return nil, err
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	jobCtx := context.WithoutCancel(ctx)

	go func() {
		defer c.jobs.Done()

		var o outcome
		defer func() {
			if r := recover(); r != nil {
				o = outcome{err: fmt.Errorf("internal error: %v", r)}
			}
			done <- o
		}()
		defer c.gate.Release()

		o.res, o.err = c.compile(jobCtx, source)
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compile runs one job in a fresh workspace. On failure the workspace is
// destroyed before returning; on success destruction is handed to the
// janitor after the result is built.
func (c *Converter) compile(ctx context.Context, source string) (res *Result, err error) {
	ws, err := c.workspaces.Create()
	if err != nil {
		c.logger.Info("compilation job failed", "error", err)
		return nil, err
	}
	logger := c.logger.With("job_id", ws.ID)

	defer func() {
		if res == nil {
			c.workspaces.Destroy(ws)
		}
	}()

	srcPath, err := c.workspaces.WriteSource(ws, source)
	if err != nil {
		logger.Info("compilation job failed", "error", err)
		return nil, err
	}

	job := texrun.NewJob(ws.ID, ws.Dir, srcPath)
	art, err := c.runner.Run(ctx, job, c.timeout)
	if err != nil {
		logger.Info("compilation job failed", "state", job.State(), "error", err)
		return nil, err
	}

	pdf, err := os.ReadFile(art.Path)
	if err != nil {
		logger.Info("compilation job failed", "error", err)
		return nil, fmt.Errorf("%w: reading artifact: %v", ErrCompilationFailed, err)
	}

	pages, err := pdfinfo.PageCount(pdf)
	if err != nil {
		logger.Debug("page count unavailable", "error", err)
	}

	res = &Result{
		JobID:       ws.ID,
		PDF:         pdf,
		LaTeX:       source,
		Pages:       pages,
		Filename:    artifactFilename,
		Disposition: "inline; filename=" + artifactFilename,
		Elapsed:     art.Elapsed,
	}
	logger.Info("compilation job succeeded", "pages", pages, "bytes", len(pdf), "elapsed", art.Elapsed)

	c.janitor.Schedule(ws)
	return res, nil
}

// Sweep removes workspaces older than maxAge from the workspace root.
func (c *Converter) Sweep(maxAge time.Duration) SweepReport {
	return c.reaper.Sweep(maxAge)
}

// StartReaper sweeps stale workspaces now and every interval until ctx ends
// or the Converter is closed.
func (c *Converter) StartReaper(ctx context.Context, interval, maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.stopBgs = append(c.stopBgs, cancel)
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		c.reaper.Run(ctx, interval, maxAge)
	}()
}

// Capacity returns how many jobs may compile at once.
func (c *Converter) Capacity() int {
	return c.gate.Size()
}

// InFlight returns how many jobs hold an admission slot.
func (c *Converter) InFlight() int {
	return c.gate.InUse()
}

// WorkspaceRoot returns the directory job workspaces are created under.
func (c *Converter) WorkspaceRoot() string {
	return c.workspaces.Root()
}

// Close rejects new jobs, waits for running jobs and reapers to stop, and
// drains pending workspace cleanup.
func (c *Converter) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	stops := c.stopBgs
	c.stopBgs = nil
	c.mu.Unlock()

	c.jobs.Wait()
	for _, stop := range stops {
		stop()
	}
	c.bg.Wait()
	c.janitor.Close()
	return nil
}
