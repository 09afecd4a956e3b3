package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Heyymant/Uncommon/internal/app"
	"github.com/Heyymant/Uncommon/internal/domain"
	"github.com/Heyymant/Uncommon/internal/prompts"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client is the connection gateway for one player: it owns the WebSocket
// pumps and maps transport events onto room session operations. A client
// is bound to at most one room at a time.
type Client struct {
	conn      *websocket.Conn
	hub       *app.RoomHub
	generator *prompts.Generator
	playerID  string
	send      chan []byte
	done      chan struct{}
	logger    *slog.Logger

	mu     sync.Mutex
	closed bool

	sessionMu sync.Mutex
	session   *app.RoomSession
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *app.RoomHub, generator *prompts.Generator, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:      conn,
		hub:       hub,
		generator: generator,
		playerID:  playerID,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
		logger:    logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.leaveCurrentRoom()
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendErrorType("invalid_message", "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		c.handleCreateRoom(msg.Payload)
	case MsgJoinRoom:
		c.handleJoinRoom(msg.Payload)
	case MsgSetPrompts:
		c.handleSetPrompts(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgSubmitWords:
		c.handleSubmitWords(msg.Payload)
	case MsgCastVote:
		c.handleCastVote(msg.Payload)
	case MsgCompleteVoting:
		c.handleCompleteVoting()
	case MsgCompleteReview:
		c.handleCompleteReview()
	case MsgPlayAgain:
		c.handlePlayAgain()
	case MsgKickPlayer:
		c.handleKickPlayer(msg.Payload)
	case MsgLeaveRoom:
		c.leaveCurrentRoom()
	case MsgFetchAIPrompts:
		c.handleFetchAIPrompts(msg.Payload)
	case MsgPing:
		c.Send(NewServerMessage("pong", nil))
	default:
		c.sendErrorType("invalid_message", "Unknown message type")
	}
}

func (c *Client) handleCreateRoom(payload json.RawMessage) {
	var p CreateRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendErrorType("invalid_message", "Invalid payload")
		return
	}

	session, err := c.hub.CreateRoom()
	if err != nil {
		c.sendErrorType("internal_error", "Failed to create room")
		return
	}

	session.RegisterClient(c.playerID, c)
	if _, err := session.Join(c.playerID, p.Name); err != nil {
		session.UnregisterClient(c.playerID)
		c.hub.DeleteSession(session.RoomCode())
		c.sendError(err)
		return
	}

	// A connection belongs to one room at a time; the old membership is
	// dropped only once the new one is established, so a failed create
	// leaves the player where they were.
	c.leaveCurrentRoom()
	c.setSession(session)

	c.Send(domain.NewPlayerEvent(domain.EventRoomCreated, session.RoomCode(), c.playerID, &domain.RoomCreatedPayload{
		RoomID: session.RoomCode(),
	}))
}

func (c *Client) handleJoinRoom(payload json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendErrorType("invalid_message", "Invalid payload")
		return
	}

	session, err := c.hub.GetSession(strings.ToUpper(strings.TrimSpace(p.RoomCode)))
	if err != nil {
		c.sendError(err)
		return
	}

	session.RegisterClient(c.playerID, c)
	if _, err := session.Join(c.playerID, p.Name); err != nil {
		session.UnregisterClient(c.playerID)
		c.sendError(err)
		return
	}

	// A rejected join must not cost the player their current room, so the
	// old membership is dropped only after the new one is established
	c.leaveCurrentRoom()
	c.setSession(session)

	c.logger.Info("player joined", "roomCode", session.RoomCode(), "playerID", c.playerID)
}

func (c *Client) handleSetPrompts(payload json.RawMessage) {
	session := c.currentSession()
	if session == nil {
		return
	}

	var p SetPromptsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendErrorType("invalid_message", "Invalid payload")
		return
	}

	if err := session.SetPrompts(c.playerID, p.Prompts); err != nil {
		c.sendError(err)
	}
}

func (c *Client) handleStartGame() {
	session := c.currentSession()
	if session == nil {
		return
	}

	if err := session.StartGame(c.playerID); err != nil {
		c.sendError(err)
	}
}

func (c *Client) handleSubmitWords(payload json.RawMessage) {
	session := c.currentSession()
	if session == nil {
		return
	}

	var p SubmitWordsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}

	session.SubmitWords(c.playerID, p.Words)
}

func (c *Client) handleCastVote(payload json.RawMessage) {
	session := c.currentSession()
	if session == nil {
		return
	}

	var p CastVotePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}

	session.CastVote(c.playerID, p.AnswerID, domain.VoteChoice(p.Vote))
}

func (c *Client) handleCompleteVoting() {
	session := c.currentSession()
	if session == nil {
		return
	}

	if err := session.CompleteVoting(c.playerID); err != nil {
		c.sendError(err)
	}
}

func (c *Client) handleCompleteReview() {
	session := c.currentSession()
	if session == nil {
		return
	}

	if err := session.CompleteReview(c.playerID); err != nil {
		c.sendError(err)
	}
}

func (c *Client) handlePlayAgain() {
	session := c.currentSession()
	if session == nil {
		return
	}

	if err := session.PlayAgain(c.playerID); err != nil {
		c.sendError(err)
	}
}

func (c *Client) handleKickPlayer(payload json.RawMessage) {
	session := c.currentSession()
	if session == nil {
		return
	}

	var p KickPlayerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendErrorType("invalid_message", "Invalid payload")
		return
	}

	if err := session.KickPlayer(c.playerID, p.PlayerID); err != nil {
		c.sendError(err)
	}
}

// handleFetchAIPrompts relays the prompt-generation collaborator's answer
// (or its fallback) to the requesting host. Generation runs off the read
// loop; a result arriving after the room moved on is simply ignored by
// the client.
func (c *Client) handleFetchAIPrompts(payload json.RawMessage) {
	session := c.currentSession()
	if session == nil {
		return
	}

	var p FetchAIPromptsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendErrorType("invalid_message", "Invalid payload")
		return
	}

	if !session.IsHost(c.playerID) {
		c.sendError(domain.ErrNotHost)
		return
	}

	category := p.Category
	if category == "" {
		category = "mixed"
	}
	count := p.Count
	if count <= 0 {
		count = 5
	}
	roomCode := session.RoomCode()

	go func() {
		generated := c.generator.Generate(context.Background(), category, count)
		c.Send(domain.NewPlayerEvent(domain.EventPromptsGenerated, roomCode, c.playerID, &domain.PromptsGeneratedPayload{
			Success:      true,
			Prompts:      generated,
			AIGenerated:  c.generator.Configured(),
			Category:     category,
			ReplaceIndex: p.ReplaceIndex,
		}))
	}()
}

// leaveCurrentRoom detaches the client from its room, if any
func (c *Client) leaveCurrentRoom() {
	c.sessionMu.Lock()
	session := c.session
	c.session = nil
	c.sessionMu.Unlock()

	if session == nil {
		return
	}
	session.UnregisterClient(c.playerID)
	session.Leave(c.playerID)
}

func (c *Client) currentSession() *app.RoomSession {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()
	return c.session
}

func (c *Client) setSession(session *app.RoomSession) {
	c.sessionMu.Lock()
	c.session = session
	c.sessionMu.Unlock()
}

// sendError reports a domain error to this connection only
func (c *Client) sendError(err error) {
	payload := errorPayload(err)
	c.Send(NewServerMessage(string(domain.EventError), payload))
}

// sendErrorType reports a transport-level error to this connection only
func (c *Client) sendErrorType(errType, message string) {
	c.Send(NewServerMessage(string(domain.EventError), &domain.ErrorPayload{
		Type:    errType,
		Message: message,
	}))
}
