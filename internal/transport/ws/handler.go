package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Heyymant/Uncommon/internal/app"
	"github.com/Heyymant/Uncommon/internal/prompts"
)

// Handler handles WebSocket connections. Room creation and joining happen
// over the socket itself, so the upgrade carries no room parameters.
type Handler struct {
	hub       *app.RoomHub
	generator *prompts.Generator
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.RoomHub, generator *prompts.Generator, logger *slog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		generator: generator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	playerID := uuid.New().String()
	h.logger.Info("websocket connected", "playerID", playerID)

	client := NewClient(conn, h.hub, h.generator, playerID, h.logger)
	client.Run()

	h.logger.Info("websocket disconnected", "playerID", playerID)
}
