package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade lets a request through to the websocket handler only when
// it is an upgrade attempt for a known game by an identified player.
// gameExists may be nil to skip the lookup.
func WebSocketUpgrade(gameExists func(gameID string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		switch {
		case gameID == "":
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game ID is required"})
		case PlayerID(c) == "":
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "player ID is required"})
		case gameExists != nil && !gameExists(gameID):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
		}

		c.Locals("allowed", true)
		return c.Next()
	}
}
