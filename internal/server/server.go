// Package server exposes the converter over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/resume"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// Converter is the part of *resume2pdf.Converter the server needs.
type Converter interface {
	Convert(ctx context.Context, doc *resume.Document) (*resume2pdf.Result, error)
	LaTeX(doc *resume.Document) (string, error)
	Capacity() int
	InFlight() int
}

var _ Converter = (*resume2pdf.Converter)(nil)

// Server is the HTTP API for resume2pdf.
type Server struct {
	router  chi.Router
	conv    Converter
	log     *slog.Logger
	maxBody int64
}

// New creates the server. A nil logger discards; maxBody <= 0 uses
// DefaultMaxBodyBytes.
func New(conv Converter, log *slog.Logger, maxBody int64) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	s := &Server{
		conv:    conv,
		log:     log,
		maxBody: maxBody,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/pdf", s.handlePDF)
	r.Post("/latex", s.handleLaTeX)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"capacity":  s.conv.Capacity(),
		"in_flight": s.conv.InFlight(),
	})
}
