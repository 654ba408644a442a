package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/riskreporter/internal/app"
	"github.com/riskreporter/report"
)

// ReportGenerator is the application surface the server needs.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req app.GenerateRequest) (*app.Artifact, error)
}

// Server is the HTTP delivery surface: trigger, credential intake and
// file download.
type Server struct {
	generator ReportGenerator
	srv       *http.Server
}

// Options configure the HTTP server.
type Options struct {
	Addr string
	// Timeout bounds one full report run; the pipeline blocks the
	// request until it finishes.
	Timeout time.Duration
}

func New(generator ReportGenerator, opts Options) *Server {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Minute
	}

	s := &Server{generator: generator}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Default().Handler)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/api/v1/reports", s.handleGenerate)

	s.srv = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: opts.Timeout,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	slog.Info("server.listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// generatePayload is the optional JSON body of a report request.
type generatePayload struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req := app.GenerateRequest{
		APIKey: strings.TrimSpace(r.Header.Get("X-API-Key")),
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var payload generatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if req.APIKey == "" {
			req.APIKey = strings.TrimSpace(payload.APIKey)
		}
		req.Model = strings.TrimSpace(payload.Model)
	}

	if req.APIKey == "" {
		writeError(w, http.StatusUnauthorized, "api credential required")
		return
	}

	artifact, err := s.generator.GenerateReport(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, app.ErrCredentialRequired):
			status = http.StatusUnauthorized
		case errors.Is(err, report.ErrNoStructuredData), errors.Is(err, report.ErrMalformedData):
			// the agents ran but could not produce verifiable data
			status = http.StatusUnprocessableEntity
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
