package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *service.GameService) {
	gs := service.NewGameService(service.NewGameManager(log.New(io.Discard)))
	app := fiber.New()
	RegisterRoutes(app, gs, nil, log.New(io.Discard))
	return app, gs
}

func do(t *testing.T, app *fiber.App, method, path, playerID, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func object(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	v, ok := body[key].(map[string]interface{})
	require.True(t, ok, "%s is not an object: %v", key, body[key])
	return v
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	require.Equal(t, http.StatusOK, status)
	id, ok := body["game_id"].(string)
	require.True(t, ok)
	return id
}

func TestPlayerIDIsRequired(t *testing.T) {
	app, _ := newTestApp()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body["error"], "Player ID is required")

	status, _ = do(t, app, http.MethodPost, "/api/game/create?playerId=bob", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestJoinAndState(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)

	status, body := do(t, app, http.MethodPost, "/api/game/join/"+id, "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "white", body["color"])

	status, body = do(t, app, http.MethodPost, "/api/game/join/"+id, "bob", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "black", body["color"])

	status, body = do(t, app, http.MethodPost, "/api/game/join/"+id, "carol", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "game_full", body["reason"])

	status, body = do(t, app, http.MethodGet, "/api/game/"+id, "carol", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "white", body["toMove"])

	status, body = do(t, app, http.MethodGet, "/api/game/missing", "carol", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "game_not_found", body["reason"])
}

func TestSeatsSurviveLaterRequests(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)
	join := "/api/game/join/" + id

	status, _ := do(t, app, http.MethodPost, join, "alice", "")
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, http.MethodPost, join, "bob", "")
	require.Equal(t, http.StatusOK, status)

	for _, other := range []string{"carol", "mallo", "zed", "xavier"} {
		status, body := do(t, app, http.MethodPost, join, other, "")
		assert.Equal(t, http.StatusConflict, status, other)
		assert.Equal(t, "game_full", body["reason"], other)
		do(t, app, http.MethodGet, "/api/game/"+id+"?playerId="+other, "", "")
	}

	status, body := do(t, app, http.MethodPost, join, "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "white", body["color"])
	status, body = do(t, app, http.MethodPost, join, "bob", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "black", body["color"])

	status, body = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "bob", `{"move":"e2 e4"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "not_your_seat", body["reason"])
	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"move":"e2 e4"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestDeleteGameEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)
	do(t, app, http.MethodPost, "/api/game/join/"+id, "alice", "")

	status, body := do(t, app, http.MethodDelete, "/api/game/"+id, "carol", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "not_seated", body["reason"])

	status, body = do(t, app, http.MethodDelete, "/api/game/"+id, "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body["game_id"])

	status, body = do(t, app, http.MethodGet, "/api/game/"+id, "alice", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "game_not_found", body["reason"])
}

func TestReachableSquaresEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)

	status, body := do(t, app, http.MethodGet, "/api/game/"+id+"/moves/g1", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "g1", body["square"])
	assert.ElementsMatch(t, []interface{}{"f3", "h3"}, body["destinations"])

	status, body = do(t, app, http.MethodGet, "/api/game/"+id+"/moves/e4", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["destinations"])

	status, body = do(t, app, http.MethodGet, "/api/game/"+id+"/moves/z9", "alice", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_notation", body["reason"])
}

func TestMoveEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)
	path := "/api/game/" + id + "/move"

	status, body := do(t, app, http.MethodPost, path, "alice", `{"from":"e2","to":"e4"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "e4", body["move"])
	state := object(t, body, "state")
	assert.Equal(t, "black", state["toMove"])

	status, body = do(t, app, http.MethodPost, path, "alice", `{"move":"e7 e5"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "e5", body["move"])

	status, body = do(t, app, http.MethodPost, path, "alice", `{"move":"e4 e5"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "illegal_pattern", body["reason"])

	status, body = do(t, app, http.MethodPost, path, "alice", `{"move":"d7 d6"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "not_your_turn", body["reason"])

	status, body = do(t, app, http.MethodPost, path, "alice", `{"move":"e2"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_notation", body["reason"])

	status, _ = do(t, app, http.MethodPost, path, "alice", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMoveEndpointEnforcesSeats(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)
	do(t, app, http.MethodPost, "/api/game/join/"+id, "alice", "")
	do(t, app, http.MethodPost, "/api/game/join/"+id, "bob", "")

	status, body := do(t, app, http.MethodPost, "/api/game/"+id+"/move", "bob", `{"move":"e2 e4"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "not_your_seat", body["reason"])
}

func TestUndoEndpoint(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)
	path := "/api/game/" + id + "/undo"

	status, body := do(t, app, http.MethodPost, path, "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["undone"])
	assert.NotContains(t, body, "move")

	do(t, app, http.MethodPost, "/api/game/"+id+"/move", "alice", `{"move":"b1 c3"}`)
	status, body = do(t, app, http.MethodPost, path, "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["undone"])
	assert.Equal(t, "Nc3", body["move"])
	state := object(t, body, "state")
	assert.Equal(t, "white", state["toMove"])
}

func TestMatchmakingEndpoints(t *testing.T) {
	app, _ := newTestApp()

	status, body := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "queued", body["status"])

	status, body = do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_queued", body["reason"])

	status, body = do(t, app, http.MethodGet, "/api/game/matchmaking/status", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "waiting", body["status"])

	status, body = do(t, app, http.MethodPost, "/api/game/matchmaking/join", "bob", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "matched", body["status"])
	bobMatch := object(t, body, "match")
	assert.Equal(t, "black", bobMatch["color"])

	status, body = do(t, app, http.MethodGet, "/api/game/matchmaking/status", "alice", "")
	require.Equal(t, http.StatusOK, status)
	aliceMatch := object(t, body, "match")
	assert.Equal(t, bobMatch["gameId"], aliceMatch["gameId"])
	assert.Equal(t, "white", aliceMatch["color"])

	status, body = do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "queued", body["status"], "a collected match does not pin the player")

	status, body = do(t, app, http.MethodPost, "/api/game/matchmaking/leave", "alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "left", body["status"])
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp()
	id := createGame(t, app)

	status, _ := do(t, app, http.MethodGet, "/ws/game/"+id, "alice", "")
	assert.Equal(t, http.StatusUpgradeRequired, status)
}

type recordingConn struct {
	messages []ws.Message
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func TestHandleMessage(t *testing.T) {
	_, gs := newTestApp()
	wsc := NewWebSocketController(gs, log.New(io.Discard))
	id, err := gs.CreateGame()
	require.NoError(t, err)

	watcher := &recordingConn{}
	require.NoError(t, gs.RegisterConnection(id, "watcher", watcher))

	err = wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`{"from":"e2","to":"e4"}`)})
	require.NoError(t, err)
	require.Len(t, watcher.messages, 2)
	assert.Equal(t, ws.MessageTypeGameState, watcher.messages[1].Type)

	err = wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`{"from":"e4","to":"e6"}`)})
	assert.ErrorIs(t, err, model.ErrNotYourTurn)
	assert.Len(t, watcher.messages, 2, "rejections are not broadcast")

	err = wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`{"from":"e9","to":"e6"}`)})
	assert.ErrorIs(t, err, model.ErrInvalidNotation)

	require.NoError(t, wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeUndo}))
	assert.Len(t, watcher.messages, 3)
	assert.ErrorIs(t, wsc.handleMessage(id, "alice", ws.Message{Type: ws.MessageTypeUndo}), errNothingToUndo)

	assert.Error(t, wsc.handleMessage(id, "alice", ws.Message{Type: "resign"}))
	assert.ErrorIs(t, wsc.handleMessage("missing", "alice", ws.Message{Type: ws.MessageTypeUndo}), service.ErrGameNotFound)
}
