package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/dto"
)

type engineUseCase interface {
	Move(ctx context.Context, marks []string) (*dto.MoveResponse, error)
	Explain(ctx context.Context, marks []string) (*dto.Node, error)
}

type handlerFunc func(ctx context.Context, msg *Message, conn *websocket.Conn) error

type Server struct {
	logger *slog.Logger
	engine engineUseCase

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc

	connectionsMutex sync.Mutex
	connections      map[string]*websocket.Conn

	srv    *http.Server
	closed bool
}

func New(logger *slog.Logger, engine engineUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		engine: engine,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*websocket.Conn),
	}

	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameExplain] = server.handleExplain

	return server
}

// Handler returns the mux serving /ws.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server. It returns nil after Shutdown.
func (that *Server) Start(port string) error {
	that.connectionsMutex.Lock()
	if that.closed {
		that.connectionsMutex.Unlock()
		return nil
	}

	that.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	srv := that.srv
	that.connectionsMutex.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and closes the open ones.
func (that *Server) Shutdown(ctx context.Context) error {
	that.connectionsMutex.Lock()
	that.closed = true
	srv := that.srv
	for id, conn := range that.connections {
		_ = conn.Close()
		delete(that.connections, id)
	}
	that.connectionsMutex.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	connID := uuid.NewString()
	log := that.logger.With("method", "upgradeToWebSocket", "connID", connID)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	that.connectionsMutex.Lock()
	that.connections[connID] = conn
	that.connectionsMutex.Unlock()

	defer that.handleDisconnect(connID, conn)

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Info("connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(conn, actionError, "invalid message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

func (that *Server) handleDisconnect(connID string, conn *websocket.Conn) {
	that.connectionsMutex.Lock()
	delete(that.connections, connID)
	that.connectionsMutex.Unlock()

	_ = conn.Close()

	that.logger.Info("WebSocket connection closed", "connID", connID)
}
