package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/dto"
)

type engineUseCase interface {
	Move(ctx context.Context, marks []string) (*dto.MoveResponse, error)
	Explain(ctx context.Context, marks []string) (*dto.Node, error)
}

type EngineHandlers interface {
	Move(ctx echo.Context) error
	Explain(ctx echo.Context) error
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type engineHandlers struct {
	logger *slog.Logger
	engine engineUseCase
}

func NewEngineHandlers(logger *slog.Logger, engine engineUseCase) EngineHandlers {
	return &engineHandlers{
		logger: logger.With("component", "rest"),
		engine: engine,
	}
}

func (that *engineHandlers) Move(ctx echo.Context) error {
	log := that.logger.With("method", "Move")

	var req dto.MoveRequest
	if err := ctx.Bind(&req); err != nil {
		log.Warn("failed to bind request", "error", err)
		return ctx.JSON(http.StatusBadRequest, errorResponse{Status: dto.StatusError, Error: "invalid request body"})
	}

	response, err := that.engine.Move(ctx.Request().Context(), req.Board)
	if err != nil {
		code := statusCode(err)
		if code == http.StatusInternalServerError {
			log.Error("failed to make move", "error", err)
		}

		return ctx.JSON(code, dto.NewErrorResponse(req.Board, err))
	}

	return ctx.JSON(http.StatusOK, response)
}

func (that *engineHandlers) Explain(ctx echo.Context) error {
	log := that.logger.With("method", "Explain")

	var req dto.MoveRequest
	if err := ctx.Bind(&req); err != nil {
		log.Warn("failed to bind request", "error", err)
		return ctx.JSON(http.StatusBadRequest, errorResponse{Status: dto.StatusError, Error: "invalid request body"})
	}

	node, err := that.engine.Explain(ctx.Request().Context(), req.Board)
	if err != nil {
		code := statusCode(err)
		if code == http.StatusInternalServerError {
			log.Error("failed to explain board", "error", err)
		}

		return ctx.JSON(code, errorResponse{Status: dto.StatusError, Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, node)
}

// statusCode maps engine errors caused by the request to 422.
func statusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidState), errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
