package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// Response is the standard JSON envelope for API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo carries error details in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Success: true, Data: data}); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

// handleHealth reports server liveness and AI prompt availability
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"aiEnabled": s.generator.Configured(),
		"provider":  s.generator.Provider(),
	})
}

// handlePrompts returns a set of prompts for the requested category without
// touching any room. Useful for hosts browsing before creating a game.
func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "mixed"
	}

	count := s.config.Game.PromptsCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 20 {
			s.respondError(w, http.StatusBadRequest, "invalid_count", "count must be between 1 and 20")
			return
		}
		count = n
	}

	list := s.generator.Generate(r.Context(), category, count)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"prompts":     list,
		"category":    category,
		"aiGenerated": s.generator.Configured(),
	})
}

// handleGetRoom returns public info about a room for a join screen
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "roomCode")))

	session, err := s.hub.GetSession(code)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "room_not_found", "room not found")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"roomCode":    session.RoomCode(),
		"playerCount": session.PlayerCount(),
		"maxPlayers":  s.config.Game.MaxPlayers,
		"gameState":   session.Phase(),
		"canJoin":     session.CanJoin(),
	})
}

// handleRoomQR serves a QR code PNG encoding the invite link for a room
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "roomCode")))

	session, err := s.hub.GetSession(code)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "room_not_found", "room not found")
		return
	}

	link := inviteLink(r, session.RoomCode())
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "qr_failed", "could not generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.logger.Error("failed to write QR response", "error", err)
	}
}

// handleStats reports aggregate counts across all active rooms
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"activeGames":  s.hub.SessionCount(),
		"totalPlayers": s.hub.TotalPlayerCount(),
	})
}

// inviteLink builds the shareable join URL from the incoming request
func inviteLink(r *http.Request, roomCode string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/?room=%s", scheme, r.Host, roomCode)
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrade work through the logging middleware
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// Flush passes through to the underlying writer when supported
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
