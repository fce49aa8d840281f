// Package api exposes a read-only HTTP view of a workspace: its health, its
// inventory, and the stored documents.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alevsk/oscal-ops/internal/logger"
	"github.com/alevsk/oscal-ops/internal/model"
	"github.com/alevsk/oscal-ops/internal/workspace"
)

// Server represents the API server
type Server struct {
	router  *mux.Router
	root    string
	timeout time.Duration
}

// NewServer creates a new API server for the workspace rooted at root
func NewServer(root string, timeout time.Duration) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		root:    root,
		timeout: timeout,
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/api/v1/models", s.listModels).Methods("GET")
	s.router.HandleFunc("/api/v1/models/{kind}", s.listKind).Methods("GET")
	s.router.HandleFunc("/api/v1/models/{kind}/{name}", s.getModel).Methods("GET")
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.timeout,
		WriteTimeout: s.timeout,
	}
	logger.Info().Str("addr", addr).Str("root", s.root).Msg("starting server")
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "healthy"}
	if meta, err := workspace.ReadMeta(s.root); err == nil {
		resp["workspace"] = meta.UUID
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// listModels returns the full workspace inventory
func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	entries, err := workspace.Inventory(s.root)
	if err != nil {
		logger.Error().Err(err).Msg("inventory scan failed")
		s.writeError(w, http.StatusInternalServerError, "inventory scan failed")
		return
	}
	if entries == nil {
		entries = []workspace.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// listKind returns the inventory entries of a single model kind
func (s *Server) listKind(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, "unknown model kind")
		return
	}

	entries, err := workspace.Inventory(s.root)
	if err != nil {
		logger.Error().Err(err).Msg("inventory scan failed")
		s.writeError(w, http.StatusInternalServerError, "inventory scan failed")
		return
	}

	filtered := []workspace.Entry{}
	for _, e := range entries {
		if e.Kind == kind {
			filtered = append(filtered, e)
		}
	}
	s.writeJSON(w, http.StatusOK, filtered)
}

// getModel returns one stored document
func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := model.ParseKind(vars["kind"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, "unknown model kind")
		return
	}

	doc, err := workspace.LoadArtifact(s.root, kind, vars["name"])
	if err != nil {
		if errors.Is(err, workspace.ErrArtifactNotFound) {
			s.writeError(w, http.StatusNotFound, "model not found")
			return
		}
		logger.Error().Err(err).Str("kind", string(kind)).Str("name", vars["name"]).Msg("failed to load artifact")
		s.writeError(w, http.StatusInternalServerError, "failed to load model")
		return
	}
	s.writeJSON(w, http.StatusOK, doc.Model())
}
