package service

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/model"
)

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameExists          = errors.New("game already exists")
	ErrGameFull            = errors.New("game is full")
	ErrNotYourSeat         = errors.New("it is the other seat's turn")
	ErrNotSeated           = errors.New("player holds no seat in this game")
	ErrDuplicateConnection = errors.New("connection already exists")
)

// ReasonCode extends model.ReasonCode with the service's own failures.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrNotYourSeat):
		return "not_your_seat"
	case errors.Is(err, ErrNotSeated):
		return "not_seated"
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, ErrGameExists):
		return "game_exists"
	case errors.Is(err, ErrGameFull):
		return "game_full"
	case errors.Is(err, ErrDuplicateConnection):
		return "duplicate_connection"
	case errors.Is(err, model.ErrAlreadyQueued):
		return "already_queued"
	}
	return model.ReasonCode(err)
}
