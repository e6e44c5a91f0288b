package entity

import (
	"fmt"
	"iter"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// BoardSize is the number of cells of a 3x3 board, addressed 0-8 in row-major order.
const BoardSize = 9

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = iota
	Human
	AI
)

const (
	MarkEmpty = 'v'
	MarkHuman = 'o'
	MarkAI    = 'x'
)

// Mark returns the wire mark of the cell. Seats are fixed: AI plays 'x', Human plays 'o'.
func (c Cell) Mark() byte {
	switch c {
	case Human:
		return MarkHuman
	case AI:
		return MarkAI
	default:
		return MarkEmpty
	}
}

// CellFromMark is the inverse of Cell.Mark.
func CellFromMark(mark byte) (Cell, error) {
	switch mark {
	case MarkEmpty:
		return Empty, nil
	case MarkHuman:
		return Human, nil
	case MarkAI:
		return AI, nil
	default:
		return Empty, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidState, mark)
	}
}

// Side is one of the two players.
type Side uint8

const (
	SideAI Side = iota + 1
	SideHuman
)

func (s Side) Valid() bool {
	return s == SideAI || s == SideHuman
}

func (s Side) Opponent() Side {
	if s == SideAI {
		return SideHuman
	}
	return SideAI
}

// Cell returns the mark the side puts on the board.
func (s Side) Cell() Cell {
	switch s {
	case SideAI:
		return AI
	case SideHuman:
		return Human
	default:
		return Empty
	}
}

func (s Side) String() string {
	switch s {
	case SideAI:
		return "ai"
	case SideHuman:
		return "human"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Board is an immutable 3x3 grid. Moves produce new boards, and two boards
// with the same cells compare equal with ==.
type Board [BoardSize]Cell

// Initial returns the all-empty board.
func Initial() Board {
	return Board{}
}

// Apply returns a copy of the board with the cell at move set to side's mark.
func (b Board) Apply(move int, side Side) (Board, error) {
	if !side.Valid() {
		return b, fmt.Errorf("%w: %s", apperror.ErrInvalidState, side)
	}

	if move < 0 || move >= BoardSize {
		return b, fmt.Errorf("%w: cell %d out of range", apperror.ErrInvalidMove, move)
	}

	if b[move] != Empty {
		return b, fmt.Errorf("%w: cell %d is occupied", apperror.ErrInvalidMove, move)
	}

	b[move] = side.Cell()

	return b, nil
}

// EmptyCells yields the indices of empty cells in ascending order.
// The order fixes search iteration order and therefore tie-breaking.
func (b Board) EmptyCells() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, cell := range b {
			if cell == Empty && !yield(i) {
				return
			}
		}
	}
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == Empty {
			return false
		}
	}
	return true
}

// String renders the board as nine wire marks, e.g. "xovvxvvvo".
func (b Board) String() string {
	marks := make([]byte, BoardSize)
	for i, cell := range b {
		marks[i] = cell.Mark()
	}
	return string(marks)
}
