package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrInvalidState    = errors.New("invalid board state")
	ErrGameAlreadyOver = errors.New("game is already over")
)
