package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// mockRedis keeps hashes in maps and returns canned results the way go-redis would.
type mockRedis struct {
	hashes map[string]map[string]string
	err    error
}

func newMockRedis() *mockRedis {
	return &mockRedis{hashes: map[string]map[string]string{}}
}

func (m *mockRedis) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	if m.err != nil {
		return redis.NewMapStringStringResult(nil, m.err)
	}
	r := map[string]string{}
	for k, v := range m.hashes[key] {
		r[k] = v
	}
	return redis.NewMapStringStringResult(r, nil)
}

func (m *mockRedis) HSetNX(ctx context.Context, key, field string, value interface{}) *redis.BoolCmd {
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	h, ok := m.hashes[key]
	if !ok {
		h = map[string]string{}
		m.hashes[key] = h
	}
	if _, exists := h[field]; exists {
		return redis.NewBoolResult(false, nil)
	}
	s, ok := value.(string)
	if !ok {
		return redis.NewBoolResult(false, errors.New("mock only stores strings"))
	}
	h[field] = s
	return redis.NewBoolResult(true, nil)
}

func (m *mockRedis) HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	var n int64
	for _, f := range fields {
		if _, ok := m.hashes[key][f]; ok {
			delete(m.hashes[key], f)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *mockRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.err)
}
