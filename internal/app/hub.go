package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/Heyymant/Uncommon/internal/config"
	"github.com/Heyymant/Uncommon/internal/domain"
)

const (
	// roomCodeChars are the characters used for room codes
	roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// timeoutScanInterval is how often playing rooms are checked for
	// round expiry
	timeoutScanInterval = time.Second

	// reapInterval is how often stale empty rooms are swept
	reapInterval = time.Hour
)

// RoomHub manages all active room sessions: creation, lookup, the
// round-timeout scan and the stale-room sweep.
type RoomHub struct {
	sessions map[string]*RoomSession
	mu       sync.RWMutex
	cfg      config.GameConfig
	logger   *slog.Logger
	done     chan struct{}
}

// NewRoomHub creates a hub and starts its background loops
func NewRoomHub(cfg config.GameConfig, logger *slog.Logger) *RoomHub {
	hub := &RoomHub{
		sessions: make(map[string]*RoomSession),
		cfg:      cfg,
		logger:   logger,
		done:     make(chan struct{}),
	}

	go hub.timeoutLoop()
	go hub.reapLoop()

	return hub
}

// CreateRoom creates a new empty room and returns its session
func (h *RoomHub) CreateRoom() (*RoomSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var code string
	for attempts := 0; attempts < 10; attempts++ {
		candidate, err := h.generateRoomCode()
		if err != nil {
			return nil, err
		}
		code = candidate
		if _, exists := h.sessions[code]; !exists {
			break
		}
	}
	if _, exists := h.sessions[code]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	room := domain.NewRoom(code, domain.GameConfig{
		Rounds:        h.cfg.Rounds,
		TimeLimit:     h.cfg.TimeLimit,
		PromptsCount:  h.cfg.PromptsCount,
		MaxPlayers:    h.cfg.MaxPlayers,
		MinNameLength: h.cfg.MinNameLength,
	})
	session := NewRoomSession(room, h.logger, h.DeleteSession)
	h.sessions[code] = session

	h.logger.Info("room created", "roomCode", code)
	return session, nil
}

// GetSession returns a room session by room code
func (h *RoomHub) GetSession(code string) (*RoomSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[code]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return session, nil
}

// DeleteSession removes and closes a room session
func (h *RoomHub) DeleteSession(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[code]; ok {
		session.Close()
		delete(h.sessions, code)
		h.logger.Info("room deleted", "roomCode", code)
	}
}

// SessionCount returns the number of active rooms
func (h *RoomHub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// TotalPlayerCount returns the total number of players across all rooms
func (h *RoomHub) TotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *RoomHub) Close() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*RoomSession)
}

// generateRoomCode draws a random room code, uniform over the charset
func (h *RoomHub) generateRoomCode() (string, error) {
	length := h.cfg.RoomCodeLength
	if length <= 0 {
		length = 6
	}

	charsetLen := big.NewInt(int64(len(roomCodeChars)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("generate room code: %w", err)
		}
		code[i] = roomCodeChars[n.Int64()]
	}
	return string(code), nil
}

// timeoutLoop periodically force-advances rooms whose round has expired
func (h *RoomHub) timeoutLoop() {
	ticker := time.NewTicker(timeoutScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			for _, session := range h.snapshotSessions() {
				session.CheckRoundTimeout(now)
			}
		}
	}
}

// reapLoop periodically cleans up stale empty rooms
func (h *RoomHub) reapLoop() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.reapStaleRooms(time.Now())
		}
	}
}

// reapStaleRooms removes rooms that have sat empty past the TTL. Rooms
// with players are never touched, so the sweep cannot race a join.
func (h *RoomHub) reapStaleRooms(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for code, session := range h.sessions {
		if session.PlayerCount() == 0 && now.Sub(session.CreatedAt()) > h.cfg.StaleRoomTTL {
			session.Close()
			delete(h.sessions, code)
			h.logger.Info("stale room cleaned up", "roomCode", code)
		}
	}
}

func (h *RoomHub) snapshotSessions() []*RoomSession {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*RoomSession, 0, len(h.sessions))
	for _, session := range h.sessions {
		out = append(out, session)
	}
	return out
}
