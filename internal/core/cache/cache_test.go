package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 指向一个没有监听的端口，所有 redis 调用都会失败
func unreachable() *Cache {
	return New(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}, zap.NewNop())
}

type item struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestGetOrLoadFallsBackWhenRedisDown(t *testing.T) {
	c := unreachable()
	defer c.Close()

	calls := 0
	got, err := GetOrLoadJSON(c, context.Background(), "category:1", time.Minute, func(context.Context) (*item, error) {
		calls++
		return &item{ID: 1, Title: "Shoes"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 1, Title: "Shoes"}, got)
	assert.Equal(t, 1, calls)

	assert.Error(t, c.Invalidate(context.Background(), "category:1"))
	assert.NoError(t, c.Invalidate(context.Background()))
}

func TestGetOrLoadPassesLoaderError(t *testing.T) {
	c := unreachable()
	defer c.Close()

	boom := errors.New("boom")
	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (*item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestSharedLoadSurvivesCallerCancel(t *testing.T) {
	c := unreachable()
	defer c.Close()

	started, release := make(chan struct{}), make(chan struct{})
	loadErr := make(chan error, 1)
	load := func(lctx context.Context) ([]byte, error) {
		close(started)
		<-release
		loadErr <- lctx.Err()
		return []byte("v"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(ctx, "product:1", time.Minute, load)
		first <- err
	}()
	<-started
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan []byte, 1)
	go func() {
		b, err := c.GetOrLoad(context.Background(), "product:1", time.Minute, func(context.Context) ([]byte, error) {
			return []byte("v"), nil
		})
		assert.NoError(t, err)
		second <- b
	}()
	close(release)

	assert.NoError(t, <-loadErr)
	assert.Equal(t, []byte("v"), <-second)
}

type mapLoader map[string][]byte

func (m mapLoader) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok := m[key]; ok {
		return b, nil
	}
	b, err := load(ctx)
	if err == nil {
		m[key] = b
	}
	return b, err
}

func TestGetOrLoadJSONHit(t *testing.T) {
	m := mapLoader{"k": []byte(`{"id":2,"title":"Hats"}`)}
	got, err := GetOrLoadJSON(m, context.Background(), "k", time.Minute, func(context.Context) (*item, error) {
		t.Fatal("loader must not run on a hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hats", got.Title)

	m["nil"] = []byte("null")
	got, err = GetOrLoadJSON[item](m, context.Background(), "nil", time.Minute, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
