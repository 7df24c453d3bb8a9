package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dealerhub/invsync/internal/domain"
	"github.com/dealerhub/invsync/internal/usecase"
)

// Server is the small admin surface: trigger an import on demand and read the
// last run's report. The scheduled job goes through the same use case.
type Server struct {
	imports *usecase.ImportUC
}

func New(imports *usecase.ImportUC) http.Handler {
	s := &Server{imports: imports}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/import", s.handleRunImport)
	mux.HandleFunc("GET /admin/import/last", s.handleLastImport)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// handleRunImport runs an import synchronously and answers with its report.
// Feeds take a while; callers are expected to be curl or the platform admin,
// both of which can wait.
func (s *Server) handleRunImport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.imports.Run(r.Context())
	if errors.Is(err, domain.ErrImportRunning) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, rep)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleLastImport(w http.ResponseWriter, r *http.Request) {
	rep := s.imports.Last()
	if rep == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no import has run yet"})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}
