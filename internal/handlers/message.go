package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/internal/logger"
	"github.com/Codelizard/HeroesOfCordan/pkg/engine"
	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

// maxMessageBytes bounds the request body of a chat message.
const maxMessageBytes = 64 << 10

// Game runs player messages. *engine.Engine implements it.
type Game interface {
	Handle(ctx context.Context, key storage.SessionKey, text string) (*engine.Response, error)
}

// MessageRequest is one player message from a chat platform.
type MessageRequest struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
	Text     string `json:"text"`
}

// MessageResponse is the game's reply. Rows groups Options the way the
// platform should lay out buttons.
type MessageResponse struct {
	Text    string     `json:"text"`
	Options []string   `json:"options"`
	Rows    [][]string `json:"rows,omitempty"`
}

type MessageHandler struct {
	game   Game
	logger *slog.Logger
}

func NewMessageHandler(game Game, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{game: game, logger: logger}
}

// ServeHTTP handles POST /v1/message
func (h *MessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for message endpoint", "method", r.Method)
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	key := storage.SessionKey{
		Platform: strings.TrimSpace(req.Platform),
		UserID:   strings.TrimSpace(req.UserID),
	}
	if !key.Valid() {
		h.logger.Warn("Missing session key fields", "platform", req.Platform, "user_id", req.UserID)
		writeError(w, h.logger, http.StatusBadRequest, "platform and user_id are required")
		return
	}

	log := logger.WithSession(h.logger, key.Platform, key.UserID)
	resp, err := h.game.Handle(r.Context(), key, req.Text)
	if err != nil {
		if errors.Is(err, storage.ErrLockTimeout) {
			log.Warn("Session busy", "error", err)
			w.Header().Set("Retry-After", "1")
			writeError(w, h.logger, http.StatusServiceUnavailable, "Session is busy, try again")
			return
		}
		log.Error("Failed to handle message", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to handle message")
		return
	}

	log.Debug("Message handled", "options", len(resp.Options))
	writeJSON(w, h.logger, http.StatusOK, MessageResponse{
		Text:    resp.Text,
		Options: resp.Options,
		Rows:    resp.Rows(),
	})
}
