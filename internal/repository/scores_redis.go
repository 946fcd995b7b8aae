package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

type redisScores struct {
	client *redis.Client
	key    string
}

// NewRedisScoreRepository - whole table stored as one JSON value under key.
func NewRedisScoreRepository(client *redis.Client, key string) ScoreRepository {
	return &redisScores{
		client: client,
		key:    key,
	}
}

func (that *redisScores) Load(ctx context.Context) (entity.ScoreTable, error) {
	response, err := that.client.Get(ctx, that.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.ScoreTable{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return unmarshalScores(response)
}

func (that *redisScores) Save(ctx context.Context, table entity.ScoreTable) error {
	scoresJSON, err := marshalScores(table)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, that.key, scoresJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set scores: %w", err)
	}

	return nil
}
