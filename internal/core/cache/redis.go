package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// loadTimeout 回源与调用方取消解耦后的上限
const loadTimeout = 10 * time.Second

// Cache redis 读穿缓存；redis 不可用时直接回源
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
	log *zap.Logger
}

func New(opt *redis.Options, l *zap.Logger) *Cache {
	return &Cache{rdb: redis.NewClient(opt), log: l.Named("cache")}
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	// 先读缓存
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.log.Debug("cache get failed", zap.String("key", key), zap.Error(err))
	}
	// single flight 合并回源；回源不跟随第一个调用方取消，每个调用方只等自己的 ctx
	ch := c.sf.DoChan(key, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		b, e := load(lctx)
		if e != nil {
			return nil, e
		}
		if e := c.rdb.Set(lctx, key, b, ttl).Err(); e != nil {
			c.log.Debug("cache set failed", zap.String("key", key), zap.Error(e))
		}
		return b, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]byte), nil
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Cache) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.rdb.Close() }
