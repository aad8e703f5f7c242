package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cooltech/alex/internal/session"
)

type sessionInfo struct {
	SessionID      string    `json:"session_id"`
	MessageCount   int       `json:"message_count"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

func toSessionInfo(s *session.Session) sessionInfo {
	return sessionInfo{
		SessionID:      s.ID,
		MessageCount:   s.TurnCount,
		Active:         true,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
	}
}

func (s *Server) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := s.assistant.ListSessions()
	out := make([]sessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionInfo(sess))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}
	sess, err := s.assistant.GetSession(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toSessionInfo(sess))
}

func (s *Server) handleRemoveSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}
	if err := s.assistant.RemoveSession(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"session_id": id,
	})
}

func (s *Server) handleRemoveAllSessions(w http.ResponseWriter, r *http.Request) {
	n, err := s.assistant.RemoveAllSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"cleared_count": n,
	})
}
