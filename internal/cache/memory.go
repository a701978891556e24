package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// item 包装缓存数据和过期时间
type item struct {
	data      []byte
	expiresAt time.Time
}

// Memory 进程内 LRU 缓存
type Memory struct {
	lru *lru.Cache[string, item]
	now func() time.Time
}

func NewMemory(size int) (*Memory, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("cache: create lru: %w", err)
	}
	return &Memory{lru: l, now: time.Now}, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.lru.Add(key, item{data: value, expiresAt: m.now().Add(ttl)})
}

// Get 不存在或已过期时返回 false
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	if m.now().After(val.expiresAt) {
		m.lru.Remove(key)
		return nil, false
	}
	return val.data, true
}

func (m *Memory) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		m.lru.Remove(key)
	}
}
