package cache

import (
	"context"
	"time"
)

// Cache 存放已序列化的响应数据，按 key 失效
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}
