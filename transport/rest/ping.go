package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type PingHandler interface {
	Root(ctx echo.Context) error
	Ping(ctx echo.Context) error
}

type pingHandler struct{}

func NewPingHandler() PingHandler {
	return &pingHandler{}
}

func (that *pingHandler) Root(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"message": "tic-tac-toe engine is running",
	})
}

func (that *pingHandler) Ping(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}
