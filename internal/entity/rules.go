package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// GameStatus is the outcome of a board.
type GameStatus uint8

const (
	InProgress GameStatus = iota
	HumanWins
	AIWins
	Draw
)

func (s GameStatus) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case HumanWins:
		return "human_wins"
	case AIWins:
		return "ai_wins"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// IsOver reports whether the game has concluded.
func (s GameStatus) IsOver() bool {
	return s != InProgress
}

// WinCombos are the 3 rows, 3 columns and 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner returns the side occupying a complete line, if any.
// Boards where both sides complete a line are rejected by Validate and
// never produced by legal move sequences.
func Winner(board Board) (Side, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return sideOf(a), true
		}
	}

	return 0, false
}

// Status derives the game status of the board.
func Status(board Board) GameStatus {
	if side, ok := Winner(board); ok {
		if side == SideAI {
			return AIWins
		}
		return HumanWins
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return InProgress
	}

	return Draw
}

// Validate checks the structural invariants of a board: known cell values,
// at most one winning side and mark counts reachable by alternating play.
func Validate(board Board) error {
	var aiCount, humanCount int
	for i, cell := range board {
		switch cell {
		case Empty:
		case AI:
			aiCount++
		case Human:
			humanCount++
		default:
			return fmt.Errorf("%w: unknown cell value %d at %d", apperror.ErrInvalidState, cell, i)
		}
	}

	if diff := aiCount - humanCount; diff > 1 || diff < -1 {
		return fmt.Errorf("%w: %d ai marks against %d human marks", apperror.ErrInvalidState, aiCount, humanCount)
	}

	var aiLine, humanLine bool
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == Empty || a != b || b != c {
			continue
		}
		if a == AI {
			aiLine = true
		} else {
			humanLine = true
		}
	}

	if aiLine && humanLine {
		return fmt.Errorf("%w: both sides complete a line", apperror.ErrInvalidState)
	}

	return nil
}

func sideOf(cell Cell) Side {
	if cell == AI {
		return SideAI
	}
	return SideHuman
}
