// Package dto maps engine values to the JSON shapes used by the adapters.
package dto

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Status tags as they appear on the wire.
const (
	StatusInProgress = "en_juego"
	StatusHumanWins  = "gana_humano"
	StatusAIWins     = "gana_ia"
	StatusDraw       = "empate"
	StatusError      = "error_backend_prolog"
)

// MoveRequest is the body of a move or explain request.
type MoveRequest struct {
	Board []string `json:"board"`
}

// MoveResponse carries the board after the AI replied and its status tag.
type MoveResponse struct {
	NewBoard []string `json:"new_board"`
	Status   string   `json:"status"`
	Error    string   `json:"error,omitempty"`
}

// ParseBoard converts nine wire marks into a board.
func ParseBoard(marks []string) (entity.Board, error) {
	var board entity.Board

	if len(marks) != entity.BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidState, entity.BoardSize, len(marks))
	}

	for i, mark := range marks {
		if len(mark) != 1 {
			return board, fmt.Errorf("%w: cell %d has mark %q", apperror.ErrInvalidState, i, mark)
		}

		cell, err := entity.CellFromMark(mark[0])
		if err != nil {
			return board, fmt.Errorf("cell %d: %w", i, err)
		}

		board[i] = cell
	}

	return board, nil
}

// FormatBoard is the inverse of ParseBoard.
func FormatBoard(board entity.Board) []string {
	marks := make([]string, entity.BoardSize)
	for i, cell := range board {
		marks[i] = string(cell.Mark())
	}

	return marks
}

// StatusTag returns the wire tag of a game status.
func StatusTag(status entity.GameStatus) string {
	switch status {
	case entity.InProgress:
		return StatusInProgress
	case entity.HumanWins:
		return StatusHumanWins
	case entity.AIWins:
		return StatusAIWins
	case entity.Draw:
		return StatusDraw
	default:
		return StatusError
	}
}

func NewMoveResponse(board entity.Board, status entity.GameStatus) *MoveResponse {
	return &MoveResponse{
		NewBoard: FormatBoard(board),
		Status:   StatusTag(status),
	}
}

// NewErrorResponse echoes the submitted marks with the error tag.
func NewErrorResponse(marks []string, err error) *MoveResponse {
	return &MoveResponse{
		NewBoard: marks,
		Status:   StatusError,
		Error:    err.Error(),
	}
}
