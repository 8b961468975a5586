package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	resume2pdf "github.com/alnah/go-resume2pdf"
	"github.com/alnah/go-resume2pdf/resume"
)

var errBodyTooLarge = errors.New("request body too large")

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.conv.Convert(r.Context(), doc)
	if err != nil {
		if r.Context().Err() != nil {
			// client went away; the job finishes and cleans up on its own
			s.log.Info("client gone before compilation finished",
				"request_id", middleware.GetReqID(r.Context()))
			return
		}
		s.fail(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", res.Disposition)
	h.Set("Content-Length", strconv.Itoa(len(res.PDF)))
	h.Set("X-Job-ID", res.JobID)
	if res.Pages > 0 {
		h.Set("X-Page-Count", strconv.Itoa(res.Pages))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

func (s *Server) handleLaTeX(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	src, err := s.conv.LaTeX(doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, src)
}

// readDocument reads a size-limited body and parses it as YAML when the
// content type says so, JSON otherwise.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*resume.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w (limit %d bytes)", errBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: reading body: %v", resume2pdf.ErrMalformedDocument, err)
	}

	if isYAML(r.Header.Get("Content-Type")) {
		return resume.ParseYAML(data)
	}
	return resume.Parse(data)
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.Contains(mediaType, "yaml")
}

// fail writes {"detail": ...} with the status for err. Server-side failures
// are logged with the full error; the response only carries the bounded
// reason.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": err.Error()})
		return
	}

	code := resume2pdf.StatusCode(err)
	if code >= http.StatusInternalServerError {
		s.log.Warn("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, code, map[string]string{"detail": resume2pdf.Reason(err)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
