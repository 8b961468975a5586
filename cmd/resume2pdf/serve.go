package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-resume2pdf/internal/server"
)

// HTTP server timeouts. The write timeout leaves room for a full
// compilation on top of the body transfer.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeSlack        = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// runServe runs the HTTP API and the periodic stale-workspace reaper until
// ctx ends, then drains in-flight jobs.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}

	cfg, err := loadSettings(&f.common, env)
	if err != nil {
		return withHint(err, configHint(err, &f.common))
	}
	mergeCompilerFlags(&f.compiler, cfg)
	mergeWorkspaceFlags(&f.workspace, cfg)
	mergeTemplateFlags(&f.template, cfg)
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.maxBodyBytes > 0 {
		cfg.Server.MaxBodyBytes = f.maxBodyBytes
	}

	level := slog.LevelInfo
	if f.common.verbose {
		level = slog.LevelDebug
	} else if f.common.quiet {
		level = slog.LevelError
	}
	log := slog.New(slog.NewJSONHandler(env.Stdout, &slog.HandlerOptions{Level: level}))

	conv, err := newConverter(cfg, log)
	if err != nil {
		return explain(err, cfg, "")
	}
	defer conv.Close()

	if interval := cfg.Workspace.SweepInterval.Std(); interval > 0 {
		conv.StartReaper(ctx, interval, cfg.Workspace.MaxAge.Std())
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
	}

	httpServer := &http.Server{
		Handler:           server.New(conv, log, cfg.Server.MaxBodyBytes),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.Compiler.Timeout.Std() + writeSlack,
		IdleTimeout:       idleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()

	log.Info("starting resume2pdf",
		"addr", ln.Addr().String(),
		"version", Version,
		"capacity", conv.Capacity(),
		"workspace_root", conv.WorkspaceRoot(),
		"template", cfg.Template.Name,
	)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
