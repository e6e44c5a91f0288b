package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

// Selection is the move chosen for one side together with its consequences.
type Selection struct {
	Move           int
	Score          int
	ResultingBoard entity.Board
	Status         entity.GameStatus
	Trace          entity.DecisionNode
}

// MoveSelector picks optimal moves. It holds no game state between calls.
type MoveSelector struct {
	traceDepth int
}

func NewMoveSelector(traceDepth int) *MoveSelector {
	return &MoveSelector{
		traceDepth: traceDepth,
	}
}

// SelectMove searches board for sideToMove and applies the best move.
func (that *MoveSelector) SelectMove(board entity.Board, sideToMove entity.Side) (*Selection, error) {
	if err := validateTurn(board, sideToMove); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	result, err := minimax.Search(board, sideToMove, minimax.WithTraceDepth(that.traceDepth))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	resultingBoard, err := board.Apply(result.Move, sideToMove)
	if err != nil {
		return nil, fmt.Errorf("failed to apply move %d: %w", result.Move, err)
	}

	return &Selection{
		Move:           result.Move,
		Score:          result.Score,
		ResultingBoard: resultingBoard,
		Status:         entity.Status(resultingBoard),
		Trace:          result.Trace,
	}, nil
}

// Explain returns the decision tree for board with sideToMove to play.
// Finished boards produce a single terminal node.
func (that *MoveSelector) Explain(board entity.Board, sideToMove entity.Side) (*entity.DecisionNode, error) {
	result, err := minimax.Search(board, sideToMove, minimax.WithTraceDepth(that.traceDepth))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return &result.Trace, nil
}

// validateTurn - checks that a move can be requested on the board.
func validateTurn(board entity.Board, sideToMove entity.Side) error {
	if !sideToMove.Valid() {
		return fmt.Errorf("%w: side to move %s", apperror.ErrInvalidState, sideToMove)
	}

	if err := entity.Validate(board); err != nil {
		return err
	}

	if status := entity.Status(board); status.IsOver() {
		return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyOver, status)
	}

	return nil
}
