package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/minaorangina/skyjo/game"
	"github.com/redis/go-redis/v9"
)

// RedisGameStore keeps each snapshot under a prefixed Redis key
type RedisGameStore struct {
	client *redis.Client
	prefix string
}

// NewRedisGameStore wraps an existing client
func NewRedisGameStore(client *redis.Client, prefix string) *RedisGameStore {
	return &RedisGameStore{client: client, prefix: prefix}
}

// DialRedis connects to addr and checks the server answers
func DialRedis(ctx context.Context, addr, prefix string) (*RedisGameStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return NewRedisGameStore(client, prefix), nil
}

// Close closes the client
func (s *RedisGameStore) Close() error {
	return s.client.Close()
}

func (s *RedisGameStore) redisKey(key string) string {
	return s.prefix + key
}

func (s *RedisGameStore) Save(ctx context.Context, key string, state game.State) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *RedisGameStore) Load(ctx context.Context, key string) (game.State, bool, error) {
	key, err := checkKey(key)
	if err != nil {
		return game.State{}, false, err
	}

	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return game.State{}, false, nil
	}
	if err != nil {
		return game.State{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	state, err := Decode(key, data)
	if err != nil {
		return game.State{}, false, err
	}
	return state, true, nil
}

func (s *RedisGameStore) Clear(ctx context.Context, key string) error {
	key, err := checkKey(key)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
