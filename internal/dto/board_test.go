package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestParseBoard(t *testing.T) {
	t.Run("Valid marks", func(t *testing.T) {
		// Given: a board with every kind of mark
		marks := []string{"x", "o", "v", "v", "x", "v", "v", "v", "o"}

		// When: parsing it
		board, err := ParseBoard(marks)

		// Then: cells follow the fixed seats
		require.NoError(t, err)
		assert.Equal(t, entity.Board{
			entity.AI, entity.Human, entity.Empty,
			entity.Empty, entity.AI, entity.Empty,
			entity.Empty, entity.Empty, entity.Human,
		}, board)
		assert.Equal(t, marks, FormatBoard(board))
	})

	t.Run("Wrong length", func(t *testing.T) {
		_, err := ParseBoard([]string{"v", "v", "v"})
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Nil board", func(t *testing.T) {
		_, err := ParseBoard(nil)
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		_, err := ParseBoard([]string{"x", "o", "q", "v", "v", "v", "v", "v", "v"})
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("Multi-character mark", func(t *testing.T) {
		_, err := ParseBoard([]string{"xo", "v", "v", "v", "v", "v", "v", "v", "v"})
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})
}

func TestStatusTag(t *testing.T) {
	assert.Equal(t, "en_juego", StatusTag(entity.InProgress))
	assert.Equal(t, "gana_humano", StatusTag(entity.HumanWins))
	assert.Equal(t, "gana_ia", StatusTag(entity.AIWins))
	assert.Equal(t, "empate", StatusTag(entity.Draw))
	assert.Equal(t, "error_backend_prolog", StatusTag(entity.GameStatus(42)))
}

func TestMoveResponse_JSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Given: a response for an ongoing game
		resp := NewMoveResponse(entity.Board{entity.AI}, entity.InProgress)

		// When: encoding it
		data, err := json.Marshal(resp)
		require.NoError(t, err)

		// Then: the error field is omitted
		assert.JSONEq(t, `{"new_board":["x","v","v","v","v","v","v","v","v"],"status":"en_juego"}`, string(data))
	})

	t.Run("Error", func(t *testing.T) {
		// Given: a rejected request
		marks := []string{"q"}
		resp := NewErrorResponse(marks, errors.New("bad board"))

		// Then: the submitted marks are echoed with the error tag
		assert.Equal(t, marks, resp.NewBoard)
		assert.Equal(t, StatusError, resp.Status)
		assert.Equal(t, "bad board", resp.Error)
	})
}
