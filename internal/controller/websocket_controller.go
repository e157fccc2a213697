package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/charmbracelet/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *log.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// lockedConn serialises writes; broadcasts from other players' moves race
// with error replies written by the read loop.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	logger := wsc.logger.With("game", gameID, "player", playerID)
	conn := &lockedConn{conn: c}

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		logger.Warn("failed to register connection", "err", err)
		_ = service.SendError(conn, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("connection closed", "err", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("malformed message", "err", err)
			_ = service.SendError(conn, fmt.Errorf("malformed message: %w", err))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			// rejections go back to the sender only
			if werr := service.SendError(conn, err); werr != nil {
				logger.Warn("failed to send error", "err", werr)
			}
		}
	}
}

// handleMessage applies one client message. Successful moves and undos reach
// every connection through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidNotation, err)
		}
		from, to, err := moveRequest{From: payload.From, To: payload.To}.squares()
		if err != nil {
			return err
		}
		_, _, err = wsc.gameService.HandleMove(gameID, playerID, from, to)
		return err

	case ws.MessageTypeUndo:
		_, ok, _, err := wsc.gameService.HandleUndo(gameID, playerID)
		if err != nil {
			return err
		}
		if !ok {
			return errNothingToUndo
		}
		return nil

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
