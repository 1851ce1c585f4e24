// Package httpapi exposes the generator over HTTP: format discovery, schema
// introspection, rendering, and the usual health and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geoforge/wavedeck/internal/domain"
	"github.com/geoforge/wavedeck/internal/generator"
	"github.com/geoforge/wavedeck/internal/observability"
	"github.com/geoforge/wavedeck/internal/render"
	"github.com/geoforge/wavedeck/internal/writer"
)

// Server exposes the generator API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	gen        *generator.Generator
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API and operational routes.
func NewServer(addr string, gen *generator.Generator, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		gen:     gen,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/formats", s.handleFormats)
	mux.HandleFunc("GET /api/schema/{format}", s.handleSchema)
	mux.HandleFunc("POST /api/render", s.handleRender)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if err := s.gen.CheckReadiness(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": s.gen.Formats()})
}

// paramDoc describes one schema parameter for introspection clients.
type paramDoc struct {
	Type    string `json:"type"`
	Doc     string `json:"doc,omitempty"`
	Default any    `json:"default,omitempty"`
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	schema, err := s.gen.Schema(format)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	required := make(map[string]paramDoc, len(schema.Required))
	for key, p := range schema.Required {
		required[key] = paramDoc{Type: p.Coerce.Name, Doc: p.Doc}
	}
	defaults := make(map[string]paramDoc, len(schema.Defaults))
	for key, p := range schema.Defaults {
		defaults[key] = paramDoc{Type: p.Coerce.Name, Doc: p.Doc, Default: p.Default}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"format":   format,
		"required": required,
		"defaults": defaults,
	})
}

// renderRequest is the body of POST /api/render. When OutputDir is set the
// rendered files are also persisted server side.
type renderRequest struct {
	Format    string                 `json:"format"`
	Config    map[string]any         `json:"config"`
	Events    []domain.EventRecord   `json:"events"`
	Stations  []domain.StationRecord `json:"stations"`
	OutputDir string                 `json:"output_dir"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Format == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format is required"})
		return
	}

	events := make([]domain.Event, 0, len(req.Events))
	for _, rec := range req.Events {
		ev, err := rec.Event()
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		events = append(events, ev)
	}
	stations := make([]domain.Station, 0, len(req.Stations))
	for _, rec := range req.Stations {
		st, err := rec.Station()
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		stations = append(stations, st)
	}

	files, err := s.gen.Render(req.Format, req.Config, events, stations)
	if err != nil {
		writeError(w, renderErrorStatus(err), err)
		return
	}

	if req.OutputDir != "" {
		if err := writer.Write(req.OutputDir, files); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.metrics.FilesWritten.Add(float64(len(files)))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"format": req.Format,
		"files":  files,
	})
}

// renderErrorStatus maps the render error taxonomy to HTTP status codes.
func renderErrorStatus(err error) int {
	var unknown *render.UnknownFormatError
	if errors.As(err, &unknown) {
		return http.StatusNotFound
	}
	var missing *render.MissingConfigurationError
	var badType *render.InvalidConfigurationTypeError
	var badCount *render.UnsupportedEventCountError
	if errors.As(err, &missing) || errors.As(err, &badType) || errors.As(err, &badCount) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
