package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront-api/internal/core/cache"
)

type readCache struct {
	c   Cache
	ttl time.Duration
	log *zap.Logger
}

func key(resource string, id uint) string { return fmt.Sprintf("%s:%d", resource, id) }

func loadCached[T any](rc readCache, ctx context.Context, k string, load func(context.Context) (*T, error)) (*T, error) {
	if rc.c == nil || rc.ttl <= 0 {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(rc.c, ctx, k, rc.ttl, load)
}

// drop 失效失败只记日志，等 TTL 过期。
// product:<id> 里带着分类标题，分类改名或删除时不逐个失效商品，标题最多滞后一个 TTL
func (rc readCache) drop(ctx context.Context, keys ...string) {
	if rc.c == nil {
		return
	}
	if err := rc.c.Invalidate(ctx, keys...); err != nil {
		rc.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
