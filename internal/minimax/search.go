// Package minimax resolves tic-tac-toe positions with an alpha-beta search
// that always runs to true terminal states, and records what it explored as
// a DecisionNode tree whose recorded depth is capped separately.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Fixed terminal scores, from the AI's perspective.
const (
	ScoreAIWin    = 1
	ScoreHumanWin = -1
	ScoreDraw     = 0
)

const (
	// DefaultTraceDepth is the number of plies recorded below the root.
	DefaultTraceDepth = 3

	// NoMove is reported when the searched board is already terminal.
	NoMove = -1

	inf = math.MaxInt
)

// Result is the outcome of a search from one root position.
type Result struct {
	Move  int
	Score int
	Trace entity.DecisionNode
}

type options struct {
	traceDepth int
}

type Option func(*options)

// WithTraceDepth caps how many plies of the trace keep their children.
// The root is always expanded, so values below 1 are treated as 1.
// Scores are unaffected: capped nodes are still searched to the end.
func WithTraceDepth(depth int) Option {
	return func(o *options) {
		o.traceDepth = max(depth, 1)
	}
}

// TerminalScore maps a finished game to its fixed score.
func TerminalScore(status entity.GameStatus) int {
	switch status {
	case entity.AIWins:
		return ScoreAIWin
	case entity.HumanWins:
		return ScoreHumanWin
	default:
		return ScoreDraw
	}
}

// Search computes the game-theoretic value of board with toMove to play,
// the optimal move for the root and the trace of the explored positions.
// Among equally scored moves the first explored, lowest index, wins.
func Search(board entity.Board, toMove entity.Side, opts ...Option) (*Result, error) {
	if err := validate(board, toMove); err != nil {
		return nil, err
	}

	conf := options{traceDepth: DefaultTraceDepth}
	for _, opt := range opts {
		opt(&conf)
	}

	root, move := trace(board, toMove, -inf, inf, 0, conf.traceDepth)

	return &Result{
		Move:  move,
		Score: root.Score,
		Trace: root,
	}, nil
}

// Evaluate returns the value of board with toMove to play without recording a trace.
func Evaluate(board entity.Board, toMove entity.Side) (int, error) {
	if err := validate(board, toMove); err != nil {
		return 0, err
	}

	return value(board, toMove, -inf, inf), nil
}

func validate(board entity.Board, toMove entity.Side) error {
	if !toMove.Valid() {
		return fmt.Errorf("%w: side to move %s", apperror.ErrInvalidState, toMove)
	}

	if err := entity.Validate(board); err != nil {
		return fmt.Errorf("invalid board %s: %w", board, err)
	}

	return nil
}

// trace explores a node exactly like value does and records it. Nodes at
// traceDepth keep their full-depth score but drop their children.
func trace(board entity.Board, side entity.Side, alpha, beta, depth, traceDepth int) (entity.DecisionNode, int) {
	node := entity.DecisionNode{
		Board:            board,
		IsMaximizingTurn: side == entity.SideAI,
	}

	if status := entity.Status(board); status.IsOver() {
		node.Score = TerminalScore(status)
		node.IsTerminal = true
		return node, NoMove
	}

	if depth >= traceDepth {
		node.Score = value(board, side, alpha, beta)
		node.IsTerminal = true
		return node, NoMove
	}

	maximizing := node.IsMaximizingTurn
	best, bestMove := worstScore(maximizing), NoMove

	for cell := range board.EmptyCells() {
		next, _ := board.Apply(cell, side) // cell is empty and side is valid

		child, _ := trace(next, side.Opponent(), alpha, beta, depth+1, traceDepth)
		node.Children = append(node.Children, child)

		if improves(maximizing, child.Score, best) {
			best, bestMove = child.Score, cell
		}

		alpha, beta = narrow(maximizing, best, alpha, beta)
		if alpha >= beta {
			break
		}
	}

	node.Score = best

	return node, bestMove
}

// value is the score-only alpha-beta search.
func value(board entity.Board, side entity.Side, alpha, beta int) int {
	if status := entity.Status(board); status.IsOver() {
		return TerminalScore(status)
	}

	maximizing := side == entity.SideAI
	best := worstScore(maximizing)

	for cell := range board.EmptyCells() {
		next, _ := board.Apply(cell, side)

		score := value(next, side.Opponent(), alpha, beta)
		if improves(maximizing, score, best) {
			best = score
		}

		alpha, beta = narrow(maximizing, best, alpha, beta)
		if alpha >= beta {
			break
		}
	}

	return best
}

func worstScore(maximizing bool) int {
	if maximizing {
		return -inf
	}
	return inf
}

// improves is strict so that ties keep the earlier move.
func improves(maximizing bool, score, best int) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

func narrow(maximizing bool, best, alpha, beta int) (int, int) {
	if maximizing {
		return max(alpha, best), beta
	}
	return alpha, min(beta, best)
}
