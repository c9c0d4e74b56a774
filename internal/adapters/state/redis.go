package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

// stateKey is the Redis hash holding all baselines, field = domain name,
// value = JSON-encoded SavedState.
const stateKey = "cdnguard:state"

// RedisStore keeps saved baselines in a shared Redis hash so several hosts
// can watch the same domains without clobbering each other's view.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Get(ctx context.Context, domainName string) (*domain.SavedState, error) {
	val, err := s.client.HGet(ctx, stateKey, domainName).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state for %s: %w", domainName, err)
	}

	var state domain.SavedState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("parsing state for %s: %w", domainName, err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state domain.SavedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state for %s: %w", state.Domain, err)
	}
	if err := s.client.HSet(ctx, stateKey, state.Domain, data).Err(); err != nil {
		return fmt.Errorf("saving state for %s: %w", state.Domain, err)
	}
	return nil
}

func (s *RedisStore) All(ctx context.Context) (map[string]domain.SavedState, error) {
	vals, err := s.client.HGetAll(ctx, stateKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing saved state: %w", err)
	}

	states := make(map[string]domain.SavedState, len(vals))
	for name, val := range vals {
		var state domain.SavedState
		if err := json.Unmarshal([]byte(val), &state); err != nil {
			return nil, fmt.Errorf("parsing state for %s: %w", name, err)
		}
		states[name] = state
	}
	return states, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
