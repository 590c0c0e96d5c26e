package testutil

import (
	"context"
	"sync"
	"time"
)

// MockRedisClient keeps keys in memory. Expiration is ignored.
type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)

	mu   sync.Mutex
	data map[string]string
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *MockRedisClient) DelIfEqual(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[key] == value {
		delete(m.data, key)
	}
	return nil
}
