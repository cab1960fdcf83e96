package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/model"
)

// RedisStore keeps the board under a single Redis key, no expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (*model.Board, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read board from redis: %w", err)
	}
	board, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board payload: %w", err)
	}
	return board, nil
}

func (s *RedisStore) Save(ctx context.Context, b *model.Board) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write board to redis: %w", err)
	}
	return nil
}
