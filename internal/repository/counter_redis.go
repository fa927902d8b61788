package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"littlego/internal/domain/game"
	ownErrors "littlego/internal/errors"
)

const (
	turnKeyPrefix = "littlego:turn:"
	turnTTL       = 24 * time.Hour
)

// RedisCounterStorage keeps one JSON encoded turn state per game id.
type RedisCounterStorage struct {
	client *redis.Client
}

func NewRedisCounterStorage(client *redis.Client) *RedisCounterStorage {
	return &RedisCounterStorage{
		client: client,
	}
}

func (r *RedisCounterStorage) Load(ctx context.Context, gameID string) (game.TurnState, error) {
	v, err := r.client.Get(ctx, turnKeyPrefix+gameID).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.TurnState{}, ownErrors.ErrCounterNotFound
	}
	if err != nil {
		return game.TurnState{}, fmt.Errorf("failed to load turn state of %s: %w", gameID, err)
	}

	var state game.TurnState
	if err := json.Unmarshal(v, &state); err != nil {
		return game.TurnState{}, fmt.Errorf("failed to decode turn state of %s: %w", gameID, err)
	}
	return state, nil
}

func (r *RedisCounterStorage) Save(ctx context.Context, gameID string, state game.TurnState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode turn state: %w", err)
	}
	return r.client.Set(ctx, turnKeyPrefix+gameID, data, turnTTL).Err()
}
