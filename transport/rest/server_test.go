package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/dto"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Move(ctx context.Context, marks []string) (*dto.MoveResponse, error) {
	args := m.Called(ctx, marks)
	return args.Get(0).(*dto.MoveResponse), args.Error(1)
}

func (m *mockEngine) Explain(ctx context.Context, marks []string) (*dto.Node, error) {
	args := m.Called(ctx, marks)
	return args.Get(0).(*dto.Node), args.Error(1)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := usecase.NewEngine(logger, tictactoe.NewMoveSelector(minimax.DefaultTraceDepth), nil)

	return New(logger, engine, []string{"*"})
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestServer_Ping(t *testing.T) {
	server := newTestServer(t)

	t.Run("Ping", func(t *testing.T) {
		rec := do(t, server.Handler(), http.MethodGet, "/ping", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("Root", func(t *testing.T) {
		rec := do(t, server.Handler(), http.MethodGet, "/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})
}

func TestServer_Move(t *testing.T) {
	server := newTestServer(t)

	t.Run("Takes the win", func(t *testing.T) {
		// Given: the ai can complete row 0
		body := `{"board":["x","x","v","o","o","v","v","v","v"]}`

		// When: posting the board
		rec := do(t, server.Handler(), http.MethodPost, "/api/move", body)

		// Then: the ai plays index 2 and wins
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.MoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, []string{"x", "x", "x", "o", "o", "v", "v", "v", "v"}, response.NewBoard)
		assert.Equal(t, dto.StatusAIWins, response.Status)
	})

	t.Run("Blocks while forking", func(t *testing.T) {
		// Given: the human threatens row 0 and the ai threatens row 1
		body := `{"board":["o","o","v","x","x","v","v","v","v"]}`

		// When: posting the board
		rec := do(t, server.Handler(), http.MethodPost, "/api/move", body)

		// Then: index 2 blocks and creates a second threat, the first winning move explored
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.MoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, []string{"o", "o", "x", "x", "x", "v", "v", "v", "v"}, response.NewBoard)
		assert.Equal(t, dto.StatusInProgress, response.Status)
	})

	t.Run("Finished board is echoed", func(t *testing.T) {
		body := `{"board":["x","o","x","o","x","o","o","x","o"]}`

		rec := do(t, server.Handler(), http.MethodPost, "/api/move", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"new_board":["x","o","x","o","x","o","o","x","o"],"status":"empate"}`, rec.Body.String())
	})

	t.Run("Malformed board", func(t *testing.T) {
		// Given: a board with an unknown mark
		body := `{"board":["x","q","v","v","v","v","v","v","v"]}`

		// When: posting it
		rec := do(t, server.Handler(), http.MethodPost, "/api/move", body)

		// Then: 422 with the error tag and the submitted board
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var response dto.MoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, dto.StatusError, response.Status)
		assert.Equal(t, []string{"x", "q", "v", "v", "v", "v", "v", "v", "v"}, response.NewBoard)
		assert.NotEmpty(t, response.Error)
	})

	t.Run("Undecodable body", func(t *testing.T) {
		rec := do(t, server.Handler(), http.MethodPost, "/api/move", `{"board":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Engine failure", func(t *testing.T) {
		// Given: an engine that fails for reasons unrelated to the request
		engine := &mockEngine{}
		engine.On("Move", mock.Anything, mock.Anything).Return((*dto.MoveResponse)(nil), assert.AnError).Once()

		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		failing := New(logger, engine, nil)

		// When: posting a valid board
		rec := do(t, failing.Handler(), http.MethodPost, "/api/move", `{"board":["v","v","v","v","v","v","v","v","v"]}`)

		// Then: 500 with the error tag
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), dto.StatusError)
		engine.AssertExpectations(t)
	})
}

func TestServer_Explain(t *testing.T) {
	server := newTestServer(t)

	t.Run("Empty board", func(t *testing.T) {
		// When: explaining the empty board
		rec := do(t, server.Handler(), http.MethodPost, "/api/explain", `{"board":["v","v","v","v","v","v","v","v","v"]}`)

		// Then: the root has one child per opening and a draw score
		require.Equal(t, http.StatusOK, rec.Code)

		var node dto.Node
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &node))
		assert.True(t, node.IsMaximizingTurn)
		assert.Equal(t, minimax.ScoreDraw, node.Score)
		assert.Len(t, node.Children, 9)
	})

	t.Run("Malformed board", func(t *testing.T) {
		rec := do(t, server.Handler(), http.MethodPost, "/api/explain", `{"board":["x","x"]}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), dto.StatusError)
	})
}

func TestServer_CORS(t *testing.T) {
	server := newTestServer(t)

	// Given: a cross-origin preflight request
	req := httptest.NewRequest(http.MethodOptions, "/api/move", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)

	// When: it is served
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	// Then: any origin is allowed
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
