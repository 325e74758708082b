// Package transport exposes the registry and timer operations over REST.
// Every service error is converted to a JSON notice at this boundary; none
// are swallowed and none crash the process.
package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/summary"
	"github.com/vibetimer/vibetimer/internal/domain/timer"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
	"github.com/vibetimer/vibetimer/internal/timeutil"
)

// Server wires HTTP handlers.
type Server struct {
	vibes  *vibe.Service
	timers *timer.Service
	logger *slog.Logger
	now    func() time.Time
}

// NewRouter creates the REST router.
func NewRouter(vibes *vibe.Service, timers *timer.Service, logger *slog.Logger) *chi.Mux {
	srv := &Server{
		vibes:  vibes,
		timers: timers,
		logger: logger,
		now:    time.Now,
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/vibe-sessions", srv.handleList)
		r.Post("/vibe-sessions", srv.handleCreate)
		r.Post("/vibe-sessions/reset", srv.handleReset)
		r.Get("/vibe-sessions/running", srv.handleRunning)
		r.Put("/vibe-sessions/{vibeID}", srv.handleEdit)
		r.Delete("/vibe-sessions/{vibeID}", srv.handleDelete)
		r.Post("/vibe-sessions/{vibeID}/start", srv.handleStart)
		r.Post("/vibe-sessions/{vibeID}/stop", srv.handleStop)
		r.Get("/summary", srv.handleSummary)
	})
	return r
}

// entryResponse is a ledger entry plus its derived session time. The
// session figure is display data recomputed per response, never stored.
type entryResponse struct {
	ledger.Entry
	SessionTime int64 `json:"session_time"`
}

func (s *Server) entryResponse(e *ledger.Entry) entryResponse {
	return entryResponse{Entry: *e, SessionTime: e.SessionSeconds(s.now())}
}

type sessionRequest struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	entries, err := s.vibes.List(r.Context(), date)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]entryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, s.entryResponse(&entries[i]))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.sessionRequest(w, r)
	if !ok {
		return
	}

	entry, err := s.vibes.Create(r.Context(), req.Date, req.Name, req.Color)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, s.entryResponse(entry))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	req, ok := s.sessionRequest(w, r)
	if !ok {
		return
	}

	vibeID := chi.URLParam(r, "vibeID")
	if err := s.vibes.Edit(r.Context(), req.Date, vibeID, req.Name, req.Color); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	vibeID := chi.URLParam(r, "vibeID")
	if err := s.vibes.Delete(r.Context(), date, vibeID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	req, ok := s.sessionRequest(w, r)
	if !ok {
		return
	}

	entry, err := s.timers.Start(r.Context(), req.Date, chi.URLParam(r, "vibeID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.entryResponse(entry))
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	req, ok := s.sessionRequest(w, r)
	if !ok {
		return
	}

	entry, err := s.timers.Stop(r.Context(), req.Date, chi.URLParam(r, "vibeID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.entryResponse(entry))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	req, ok := s.sessionRequest(w, r)
	if !ok {
		return
	}

	if err := s.timers.ResetAll(r.Context(), req.Date); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRunning(w http.ResponseWriter, r *http.Request) {
	entry, err := s.timers.Running(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := map[string]any{"running": nil}
	if entry != nil {
		resp["running"] = s.entryResponse(entry)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}

	entries, err := s.vibes.List(r.Context(), date)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary.Distribution(date, entries, s.now()))
}

// dateParam reads and validates the date query parameter.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		s.writeError(w, http.StatusBadRequest, "date query parameter is required")
		return "", false
	}
	if _, err := timeutil.ParseDateKey(date); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return "", false
	}
	return date, true
}

// sessionRequest decodes and validates a JSON request body carrying a date.
func (s *Server) sessionRequest(w http.ResponseWriter, r *http.Request) (sessionRequest, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if _, err := timeutil.ParseDateKey(req.Date); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return req, false
	}
	return req, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vibe.ErrDuplicateName):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, vibe.ErrVibeNotFound), errors.Is(err, timer.ErrVibeNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vibe.ErrReadOnlyDate), errors.Is(err, timer.ErrReadOnlyDate):
		s.writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, vibe.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		if s.logger != nil {
			s.logger.Error("request failed", "error", err)
		}
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
