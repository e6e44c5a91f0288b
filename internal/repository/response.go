package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/dto"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrResponseNotFound = errors.New("response not found")

const (
	movePrefix    = "move:"
	explainPrefix = "explain:"
)

// ResponseRepository memoizes adapter responses by board. The engine is
// deterministic, so a board always maps to the same response.
type ResponseRepository interface {
	GetMove(ctx context.Context, board entity.Board) (*dto.MoveResponse, error)
	SaveMove(ctx context.Context, board entity.Board, response *dto.MoveResponse) error
	GetExplain(ctx context.Context, board entity.Board) (*dto.Node, error)
	SaveExplain(ctx context.Context, board entity.Board, node *dto.Node) error
}

type dbResponse struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResponseRepository(client *redis.Client, ttl time.Duration) ResponseRepository {
	return &dbResponse{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbResponse) GetMove(ctx context.Context, board entity.Board) (*dto.MoveResponse, error) {
	var response dto.MoveResponse
	if err := that.get(ctx, movePrefix+board.String(), &response); err != nil {
		return nil, err
	}

	return &response, nil
}

func (that *dbResponse) SaveMove(ctx context.Context, board entity.Board, response *dto.MoveResponse) error {
	return that.set(ctx, movePrefix+board.String(), response)
}

func (that *dbResponse) GetExplain(ctx context.Context, board entity.Board) (*dto.Node, error) {
	var node dto.Node
	if err := that.get(ctx, explainPrefix+board.String(), &node); err != nil {
		return nil, err
	}

	return &node, nil
}

func (that *dbResponse) SaveExplain(ctx context.Context, board entity.Board, node *dto.Node) error {
	return that.set(ctx, explainPrefix+board.String(), node)
}

func (that *dbResponse) get(ctx context.Context, key string, value any) error {
	response, err := that.client.Get(ctx, key).Bytes()

	if errors.Is(err, redis.Nil) {
		return ErrResponseNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err = json.Unmarshal(response, value); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return nil
}

func (that *dbResponse) set(ctx context.Context, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal %s: %w", key, err)
	}

	if err = that.client.Set(ctx, key, valueJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}
