package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/dto"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type moveSelector interface {
	SelectMove(board entity.Board, sideToMove entity.Side) (*tictactoe.Selection, error)
	Explain(board entity.Board, sideToMove entity.Side) (*entity.DecisionNode, error)
}

type responseRepo interface {
	GetMove(ctx context.Context, board entity.Board) (*dto.MoveResponse, error)
	SaveMove(ctx context.Context, board entity.Board, response *dto.MoveResponse) error
	GetExplain(ctx context.Context, board entity.Board) (*dto.Node, error)
	SaveExplain(ctx context.Context, board entity.Board, node *dto.Node) error
}

// Engine answers adapter requests. The AI is always the side to move.
type Engine struct {
	logger *slog.Logger

	selector  moveSelector
	responses responseRepo
}

// NewEngine builds the use case. responses may be nil to disable caching.
func NewEngine(logger *slog.Logger, selector moveSelector, responses responseRepo) *Engine {
	return &Engine{
		logger: logger.With("component", "engine"),

		selector:  selector,
		responses: responses,
	}
}

// Move plays the AI reply on the submitted board. A finished board is
// returned unchanged with its status.
func (that *Engine) Move(ctx context.Context, marks []string) (*dto.MoveResponse, error) {
	log := that.logger.With("method", "Move")

	board, err := parseBoard(marks)
	if err != nil {
		return nil, err
	}

	if status := entity.Status(board); status.IsOver() {
		log.Debug("game already over", "board", board.String(), "status", status.String())
		return dto.NewMoveResponse(board, status), nil
	}

	if cached := that.cachedMove(ctx, board); cached != nil {
		return cached, nil
	}

	selection, err := that.selector.SelectMove(board, entity.SideAI)
	if err != nil {
		return nil, fmt.Errorf("failed to select move: %w", err)
	}

	log.Info("move selected",
		"board", board.String(),
		"move", selection.Move,
		"score", selection.Score,
		"status", selection.Status.String(),
	)

	response := dto.NewMoveResponse(selection.ResultingBoard, selection.Status)
	that.saveMove(ctx, board, response)

	return response, nil
}

// Explain returns the depth-capped decision tree for the AI on the submitted board.
func (that *Engine) Explain(ctx context.Context, marks []string) (*dto.Node, error) {
	log := that.logger.With("method", "Explain")

	board, err := parseBoard(marks)
	if err != nil {
		return nil, err
	}

	if cached := that.cachedExplain(ctx, board); cached != nil {
		return cached, nil
	}

	tree, err := that.selector.Explain(board, entity.SideAI)
	if err != nil {
		return nil, fmt.Errorf("failed to explain board: %w", err)
	}

	log.Info("tree built", "board", board.String(), "score", tree.Score, "nodes", tree.Size())

	node := dto.NewNode(tree)
	that.saveExplain(ctx, board, &node)

	return &node, nil
}

func parseBoard(marks []string) (entity.Board, error) {
	board, err := dto.ParseBoard(marks)
	if err != nil {
		return board, fmt.Errorf("failed to parse board: %w", err)
	}

	if err = entity.Validate(board); err != nil {
		return board, fmt.Errorf("failed to validate board %s: %w", board, err)
	}

	return board, nil
}

func (that *Engine) cachedMove(ctx context.Context, board entity.Board) *dto.MoveResponse {
	if that.responses == nil {
		return nil
	}

	response, err := that.responses.GetMove(ctx, board)
	if err != nil {
		that.logCacheError("cachedMove", board, err)
		return nil
	}

	return response
}

func (that *Engine) saveMove(ctx context.Context, board entity.Board, response *dto.MoveResponse) {
	if that.responses == nil {
		return
	}

	if err := that.responses.SaveMove(ctx, board, response); err != nil {
		that.logCacheError("saveMove", board, err)
	}
}

func (that *Engine) cachedExplain(ctx context.Context, board entity.Board) *dto.Node {
	if that.responses == nil {
		return nil
	}

	node, err := that.responses.GetExplain(ctx, board)
	if err != nil {
		that.logCacheError("cachedExplain", board, err)
		return nil
	}

	return node
}

func (that *Engine) saveExplain(ctx context.Context, board entity.Board, node *dto.Node) {
	if that.responses == nil {
		return
	}

	if err := that.responses.SaveExplain(ctx, board, node); err != nil {
		that.logCacheError("saveExplain", board, err)
	}
}

// logCacheError - a broken cache never fails a request.
func (that *Engine) logCacheError(method string, board entity.Board, err error) {
	if errors.Is(err, repository.ErrResponseNotFound) {
		return
	}

	that.logger.Warn("response cache failed", "method", method, "board", board.String(), "error", err)
}
