package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

const (
	actionGameMove    = "game:move"
	actionGameExplain = "game:explain"
)

func (that *Server) handleMove(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMove")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	response, err := that.engine.Move(ctx, payloadReq.Board)
	if err != nil {
		log.Warn("failed to make move", "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Move: response}); err != nil {
		return fmt.Errorf("failed to send move: %w", err)
	}

	return nil
}

func (that *Server) handleExplain(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleExplain")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	tree, err := that.engine.Explain(ctx, payloadReq.Board)
	if err != nil {
		log.Warn("failed to explain board", "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Tree: tree}); err != nil {
		return fmt.Errorf("failed to send tree: %w", err)
	}

	return nil
}
