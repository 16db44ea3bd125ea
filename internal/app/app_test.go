package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-api/internal/core/config"
	"storefront-api/internal/domain"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWT: config.JWT{Secret: "s", Issuer: "storefront-api", AccessTokenTTLMin: 5},
		DB: config.DB{
			Driver:           "sqlite",
			DSN:              "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on",
			MaxOpenConns:     1,
			MaxIdleConns:     1,
			AcquireTimeoutMs: 1000,
			AutoMigrate:      true,
			LogLevel:         "silent",
		},
		Pagination: config.Pagination{DefaultSize: 10, MaxSize: 20},
		Password:   config.Password{Cost: 4},
	}
}

func TestNewWiresServices(t *testing.T) {
	a, err := New(context.Background(), sqliteConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.cache)
	c, err := a.Services.Categories.Store(context.Background(), "Hats")
	require.NoError(t, err)

	page, err := a.Services.Categories.FindAll(context.Background(), domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, c.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.Pagination.Size)

	tok, err := a.JWT.Issue(1, "admin")
	require.NoError(t, err)
	_, err = a.JWT.Parse(tok)
	require.NoError(t, err)
}

func TestNewRequiresSecret(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.JWT.Secret = ""
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoJWTSecret)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DB.Driver = "oracle"
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
