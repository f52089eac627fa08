package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

const sessionPath = "/v1/session/"

type SessionHandler struct {
	sessions storage.SessionStore
	logger   *slog.Logger
}

func NewSessionHandler(sessions storage.SessionStore, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// ServeHTTP handles session inspection
// Routes:
// GET /v1/session/{platform}/{user_id}    - Read the stored session
// DELETE /v1/session/{platform}/{user_id} - Forget the session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, sessionPath), "/"), "/")
	if len(parts) != 2 {
		h.logger.Warn("Invalid session path", "path", r.URL.Path)
		writeError(w, h.logger, http.StatusBadRequest, "Expected /v1/session/{platform}/{user_id}")
		return
	}
	key := storage.SessionKey{Platform: parts[0], UserID: parts[1]}
	if !key.Valid() {
		writeError(w, h.logger, http.StatusBadRequest, "platform and user_id are required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s, err := h.sessions.LoadSession(r.Context(), key)
		if err != nil {
			h.logger.Error("Failed to load session", "session", key.String(), "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
			return
		}
		if s == nil {
			writeError(w, h.logger, http.StatusNotFound, "Session not found")
			return
		}
		writeJSON(w, h.logger, http.StatusOK, s)

	case http.MethodDelete:
		if err := h.sessions.DeleteSession(r.Context(), key); err != nil {
			h.logger.Error("Failed to delete session", "session", key.String(), "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
			return
		}
		h.logger.Info("Session deleted", "session", key.String())
		w.WriteHeader(http.StatusNoContent)

	default:
		h.logger.Warn("Method not allowed for session endpoint", "method", r.Method)
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
	}
}
