// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                   liveness probe
//	POST   /v1/layouts                compute a layout for a JSON scene
//	POST   /v1/documents              compute and save a named layout
//	GET    /v1/documents              list saved layouts
//	GET    /v1/documents/{id}         fetch one saved layout
//	DELETE /v1/documents/{id}         delete a saved layout
//
// POST /v1/layouts accepts query parameters: format (json, svg, dot;
// default json), ghosts, grid, and clamp.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mlehnert/placard/pkg/pipeline"
	"github.com/mlehnert/placard/pkg/place"
	"github.com/mlehnert/placard/pkg/scene"
	"github.com/mlehnert/placard/pkg/store"
)

// Server handles HTTP requests against the layout pipeline.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a Server. The store may be nil, which disables the document
// routes with 503 responses.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleComputeLayout)
		r.Post("/documents", s.handleCreateDocument)
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}", s.handleGetDocument)
		r.Delete("/documents/{id}", s.handleDeleteDocument)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleComputeLayout(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.DecodeJSON(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts, format, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.ExecuteScene(r.Context(), sc, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[pipeline.FormatDOT])
	default:
		writeJSON(w, http.StatusOK, result.Layout)
	}
}

// createDocumentRequest is the body of POST /v1/documents.
type createDocumentRequest struct {
	Name  string      `json:"name"`
	Scene scene.Scene `json:"scene"`
	Clamp bool        `json:"clamp,omitempty"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("document store not configured"))
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	sc := req.Scene
	result, err := s.runner.ExecuteScene(r.Context(), &sc, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Clamp:   req.Clamp,
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	doc := store.NewDocument(req.Name, result.Layout)
	if err := s.store.Save(r.Context(), doc); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("document store not configured"))
		return
	}
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("document store not configured"))
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("document store not configured"))
		return
	}
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// optionsFromQuery translates query parameters into pipeline options plus the
// response format.
func optionsFromQuery(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	switch format {
	case pipeline.FormatJSON, pipeline.FormatSVG, pipeline.FormatDOT:
	default:
		return pipeline.Options{}, "", fmt.Errorf("unsupported format %q (expected json, svg, dot)", format)
	}

	opts := pipeline.Options{
		Formats: []string{format},
		Ghosts:  q.Get("ghosts") == "true",
		Clamp:   q.Get("clamp") == "true",
	}
	if grid := q.Get("grid"); grid != "" {
		v, err := strconv.ParseFloat(grid, 64)
		if err != nil || v < 0 {
			return pipeline.Options{}, "", fmt.Errorf("invalid grid %q", grid)
		}
		opts.Grid = v
	}
	return opts, format, nil
}

// statusFor maps pipeline errors to HTTP status codes. Scene and placement
// validation failures are the client's fault.
func statusFor(err error) int {
	if errors.Is(err, scene.ErrInvalid) ||
		errors.Is(err, place.ErrInvalidDimension) ||
		errors.Is(err, place.ErrInvalidConfiguration) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
