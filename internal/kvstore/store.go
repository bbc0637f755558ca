// Package kvstore is the durable key/value storage behind browser sessions.
package kvstore

import (
	"context"
	"sync"
)

// Store is a string key/value store. A missing key is reported by ok=false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Memory keeps everything in process; used when no durable backend is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.mu.Unlock()
	return nil
}

// Namespaced prefixes every key with ns so many sessions can share one backend.
type Namespaced struct {
	Inner Store
	NS    string
}

func (n Namespaced) key(k string) string { return n.NS + ":" + k }

func (n Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.Inner.Get(ctx, n.key(key))
}

func (n Namespaced) Set(ctx context.Context, key, value string) error {
	return n.Inner.Set(ctx, n.key(key), value)
}

func (n Namespaced) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, n.key(k))
	}
	return n.Inner.Delete(ctx, full...)
}
