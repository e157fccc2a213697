package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewGameController(gameService *service.GameService, logger *log.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

// moveRequest accepts either explicit squares or a single "e2 e4" string.
type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Move string `json:"move"`
}

func (r moveRequest) squares() (model.Square, model.Square, error) {
	if r.Move != "" {
		return model.ParseMove(r.Move)
	}
	from, err := model.ParseSquare(r.From)
	if err != nil {
		return model.Square{}, model.Square{}, err
	}
	to, err := model.ParseSquare(r.To)
	if err != nil {
		return model.Square{}, model.Square{}, err
	}
	return from, to, nil
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) ReachableSquares(c *fiber.Ctx) error {
	sq, err := model.ParseSquare(c.Params("square"))
	if err != nil {
		return gc.fail(c, err)
	}

	destinations, err := gc.gameService.ReachableSquares(c.Params("gameId"), sq)
	if err != nil {
		return gc.fail(c, err)
	}
	if destinations == nil {
		destinations = []model.Square{}
	}

	return c.JSON(fiber.Map{
		"square":       sq,
		"destinations": destinations,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	from, to, err := req.squares()
	if err != nil {
		return gc.fail(c, err)
	}

	record, state, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), from, to)
	if err != nil {
		return gc.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"move":  record.Notation(),
		"state": state,
	})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	record, ok, state, err := gc.gameService.HandleUndo(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}

	resp := fiber.Map{
		"undone": ok,
		"state":  state,
	}
	if ok {
		resp["move"] = record.Notation()
	}
	return c.JSON(resp)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if err := gc.gameService.DeleteGame(gameID, middleware.PlayerID(c)); err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game deleted",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	match, err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	if match == nil {
		return c.JSON(fiber.Map{"status": "queued"})
	}
	return c.JSON(fiber.Map{
		"status": "matched",
		"match":  match,
	})
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	match, ok := gc.gameService.MatchmakingStatus(middleware.PlayerID(c))
	if !ok {
		return c.JSON(fiber.Map{"status": "waiting"})
	}
	return c.JSON(fiber.Map{
		"status": "matched",
		"match":  match,
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	gc.gameService.LeaveMatchmaking(middleware.PlayerID(c))
	return c.JSON(fiber.Map{"status": "left"})
}

// fail maps service and engine errors onto HTTP statuses.
func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var rejected *model.MoveRejectedError

	switch {
	case errors.Is(err, service.ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrAlreadyQueued):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrNotYourSeat), errors.Is(err, service.ErrNotSeated):
		status = fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidNotation):
		status = fiber.StatusBadRequest
	case errors.As(err, &rejected):
		status = fiber.StatusUnprocessableEntity
	}

	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", "path", c.Path(), "err", err)
	}

	body := fiber.Map{"error": err.Error()}
	if reason := service.ReasonCode(err); reason != "" {
		body["reason"] = reason
	}
	return c.Status(status).JSON(body)
}
