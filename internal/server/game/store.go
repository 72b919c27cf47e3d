package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("game not found")

// Store persists games as snapshots. Loaded states are private copies;
// changes only become visible through Save.
type Store interface {
	Load(ctx context.Context, id string) (*GameState, error)
	Save(ctx context.Context, gs *GameState) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func encodeState(gs *GameState) ([]byte, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", gs.ID, err)
	}
	return data, nil
}

func decodeState(id string, data []byte) (*GameState, error) {
	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	if gs.Game == nil {
		return nil, fmt.Errorf("decode game %s: empty game", id)
	}
	return &gs, nil
}

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*GameState, error) {
	m.mu.RLock()
	data, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decodeState(id, data)
}

func (m *MemoryStore) Save(_ context.Context, gs *GameState) error {
	data, err := encodeState(gs)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.games[gs.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// RedisStore keeps each game under "game:<id>" with an optional expiry.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// DialRedis connects and pings the server.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return rdb, nil
}

func redisKey(id string) string { return "game:" + id }

func (s *RedisStore) Load(ctx context.Context, id string) (*GameState, error) {
	data, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return decodeState(id, data)
}

func (s *RedisStore) Save(ctx context.Context, gs *GameState) error {
	data, err := encodeState(gs)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, redisKey(gs.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save game %s: %w", gs.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
