package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Match tells a queued player which game they were paired into.
type Match struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

type GameManager struct {
	sessions map[string]*Session
	queue    *model.Queue
	matches  map[string]Match // playerID -> match, until handed to the player
	mu       sync.RWMutex
	logger   *log.Logger
}

func NewGameManager(logger *log.Logger) *GameManager {
	return &GameManager{
		sessions: make(map[string]*Session),
		queue:    model.NewQueue(),
		matches:  make(map[string]Match),
		logger:   logger,
	}
}

func (gm *GameManager) CreateGame(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return nil, ErrGameExists
	}

	session := NewSession(gameID, gm.logger)
	gm.sessions[gameID] = session
	gm.logger.Info("game created", "game", gameID)
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.sessions[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (gm *GameManager) RemoveGame(gameID string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; !exists {
		return false
	}
	delete(gm.sessions, gameID)
	gm.logger.Info("game removed", "game", gameID)
	return true
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.sessions)
}

// JoinMatchmaking queues playerID and pairs the two longest-waiting players
// into a new game. The returned match is set when playerID was paired.
func (gm *GameManager) JoinMatchmaking(playerID string) (*Match, error) {
	if match, ok := gm.CollectMatch(playerID); ok {
		return &match, nil
	}
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return nil, err
	}
	gm.logger.Debug("player queued", "player", playerID, "waiting", gm.queue.Size())

	first, second, ok := gm.queue.GetNextPair()
	if !ok {
		return nil, nil
	}

	session, err := gm.CreateGame(uuid.New().String())
	if err != nil {
		return nil, err
	}
	white, _ := session.AddPlayer(first.ID)
	black, _ := session.AddPlayer(second.ID)

	gm.mu.Lock()
	gm.matches[first.ID] = Match{GameID: session.ID, Color: white}
	gm.matches[second.ID] = Match{GameID: session.ID, Color: black}
	gm.mu.Unlock()
	gm.logger.Info("players matched", "game", session.ID,
		"white", first.ID, "black", second.ID,
		"waited", time.Since(first.JoinedAt).Round(time.Millisecond))

	if match, ok := gm.CollectMatch(playerID); ok {
		return &match, nil
	}
	return nil, nil
}

// CollectMatch hands playerID their match once; afterwards they may queue again.
func (gm *GameManager) CollectMatch(playerID string) (Match, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	match, ok := gm.matches[playerID]
	if ok {
		delete(gm.matches, playerID)
	}
	return match, ok
}

// LeaveMatchmaking removes playerID from the queue and forgets any match
// they have not collected.
func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.queue.Remove(playerID)
	gm.mu.Lock()
	delete(gm.matches, playerID)
	gm.mu.Unlock()
}
