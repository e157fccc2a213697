package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) (*Match, error) {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) (Match, bool) {
	return gs.gameManager.CollectMatch(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

// DeleteGame abandons a game. Once anyone is seated only a seated player may
// delete it.
func (gs *GameService) DeleteGame(gameID string, playerID string) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	seats := session.Seats()
	if seats.White.ID != "" || seats.Black.ID != "" {
		if _, seated := seats.ColorOf(playerID); !seated {
			return ErrNotSeated
		}
	}
	if !gs.gameManager.RemoveGame(gameID) {
		return ErrGameNotFound
	}
	return nil
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.GetState(), nil
}

func (gs *GameService) ReachableSquares(gameID string, sq model.Square) ([]model.Square, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.Reachable(sq), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, from, to model.Square) (model.MoveRecord, model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveRecord{}, model.GameState{}, err
	}
	return session.MakeMove(playerID, from, to)
}

func (gs *GameService) HandleUndo(gameID string, playerID string) (model.MoveRecord, bool, model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveRecord{}, false, model.GameState{}, err
	}
	record, ok, state := session.Undo(playerID)
	return record, ok, state, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}
