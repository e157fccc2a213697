package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/charmbracelet/log"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session wraps one game with the lock that serialises its mutations, the
// seats and the connections watching it.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *model.Game
	seats       model.Seats
	connections *GameConnections
	logger      *log.Logger
}

func NewSession(id string, logger *log.Logger) *Session {
	return &Session{
		ID:          id,
		game:        model.NewGame(),
		connections: NewGameConnections(),
		logger:      logger.With("game", id),
	}
}

func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.seats.Take(playerID)
	if !ok {
		return "", ErrGameFull
	}
	s.logger.Info("player seated", "player", playerID, "color", color)
	return color, nil
}

func (s *Session) Seats() model.Seats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seats
}

func (s *Session) GetState() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) Reachable(sq model.Square) []model.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Reachable(sq)
}

// MakeMove applies a move for playerID. A seated player may only move on
// their own color's turn; anyone else plays whichever side is to move.
func (s *Session) MakeMove(playerID string, from, to model.Square) (model.MoveRecord, model.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, seated := s.seats.ColorOf(playerID); seated && color != s.game.Turn() {
		return model.MoveRecord{}, model.GameState{}, ErrNotYourSeat
	}

	record, err := s.game.AttemptMove(from, to)
	if err != nil {
		s.logger.Debug("move rejected", "player", playerID, "from", from, "to", to, "reason", model.ReasonCode(err))
		return model.MoveRecord{}, model.GameState{}, err
	}
	s.logger.Info("move applied", "player", playerID, "move", record.Notation())

	state := s.game.Snapshot()
	s.broadcastState(state)
	return record, state, nil
}

// Undo takes back the last move. ok is false when there was nothing to undo.
func (s *Session) Undo(playerID string) (model.MoveRecord, bool, model.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.game.Undo()
	state := s.game.Snapshot()
	if ok {
		s.logger.Info("move undone", "player", playerID, "move", record.Notation())
		s.broadcastState(state)
	}
	return record, ok, state
}

func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the newcomer
		s.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	s.logger.Info("connection registered", "player", playerID)

	// Send initial state
	s.mu.Lock()
	state := s.game.Snapshot()
	s.mu.Unlock()
	s.sendState(playerID, conn, state)
	return nil
}

// UnregisterConnection drops playerID's connection if conn is still the current one.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, exists := s.connections.connections[playerID]; exists && current == conn {
		delete(s.connections.connections, playerID)
		s.logger.Info("connection unregistered", "player", playerID)
	}
}

func (s *Session) ConnectionCount() int {
	s.connections.mu.RLock()
	defer s.connections.mu.RUnlock()
	return len(s.connections.connections)
}

func (s *Session) broadcastState(state model.GameState) {
	// Get a snapshot of connections under the connections mutex
	s.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		activeConnections[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		s.sendState(playerID, conn, state)
	}
}

func (s *Session) sendState(playerID string, conn Conn, state model.GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("failed to marshal state", "err", err)
		return
	}
	if err := conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}); err != nil {
		s.logger.Warn("failed to send state, dropping connection", "player", playerID, "err", err)
		s.UnregisterConnection(playerID, conn)
	}
}

// SendError reports a failure to a single connection.
func SendError(conn Conn, err error) error {
	payload, merr := json.Marshal(ws.ErrorPayload{
		Error:  err.Error(),
		Reason: ReasonCode(err),
	})
	if merr != nil {
		return fmt.Errorf("marshal error payload: %w", merr)
	}
	return conn.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
