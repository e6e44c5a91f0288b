package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

// New builds the HTTP adapter. origins is the CORS allow list, "*" allows any.
func New(logger *slog.Logger, engine engineUseCase, origins []string) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		echo:   echo.New(),
	}

	server.echo.HideBanner = true
	server.echo.HidePort = true

	server.echo.Server.ReadTimeout = 10 * time.Second
	server.echo.Server.WriteTimeout = 10 * time.Second
	server.echo.Server.IdleTimeout = 30 * time.Second

	server.echo.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:     true,
			LogURI:        true,
			LogStatus:     true,
			LogLatency:    true,
			LogRequestID:  true,
			LogError:      true,
			HandleError:   true,
			LogValuesFunc: server.logRequest,
		}),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
		}),
	)

	ping := NewPingHandler()
	server.echo.GET("/", ping.Root)
	server.echo.GET("/ping", ping.Ping)

	handlers := NewEngineHandlers(logger, engine)
	api := server.echo.Group("/api")
	api.POST("/move", handlers.Move)
	api.POST("/explain", handlers.Explain)

	return server
}

// Start - starts HTTP server. It returns nil after Shutdown.
func (that *Server) Start(port string) error {
	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// Handler exposes the router, mainly for tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}

func (that *Server) logRequest(ctx echo.Context, values middleware.RequestLoggerValues) error {
	attrs := []slog.Attr{
		slog.String("id", values.RequestID),
		slog.String("method", values.Method),
		slog.String("uri", values.URI),
		slog.Int("status", values.Status),
		slog.Duration("latency", values.Latency),
	}

	if values.Error != nil {
		attrs = append(attrs, slog.String("error", values.Error.Error()))
		that.logger.LogAttrs(ctx.Request().Context(), slog.LevelError, "request failed", attrs...)
		return nil
	}

	that.logger.LogAttrs(ctx.Request().Context(), slog.LevelInfo, "request", attrs...)

	return nil
}
