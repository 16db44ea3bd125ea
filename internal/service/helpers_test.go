package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront-api/internal/core/database"
	"storefront-api/internal/domain"
	"storefront-api/internal/repo"
	"storefront-api/internal/testkit"
	"storefront-api/pkg/utils"
)

type env struct {
	db   *gorm.DB
	deps Deps
	logs *observer.ObservedLogs
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testkit.NewDB(t)
	core, logs := observer.New(zapcore.DebugLevel)
	return &env{
		db:   db,
		logs: logs,
		deps: Deps{
			Conns:  testkit.NewPool(t, db),
			Repos:  GormRepos(),
			Hasher: utils.Bcrypt{Cost: bcrypt.MinCost},
			Limits: repo.Limits{DefaultSize: 50, MaxSize: 200},
			Log:    zap.New(core),
		},
	}
}

// count 只能在服务调用之外使用，池里只有一条连接
func count(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind domain.Kind) *domain.Error {
	t.Helper()
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, kind, derr.Kind, derr.Message)
	return derr
}

func ptr[T any](v T) *T { return &v }

type busyConns struct{}

func (busyConns) WithConn(context.Context, func(*gorm.DB) error) error {
	return database.ErrPoolExhausted
}

func (busyConns) WithTx(context.Context, func(*gorm.DB) error) error {
	return database.ErrPoolExhausted
}

type countingConns struct {
	Conns
	calls int
}

func (c *countingConns) WithConn(ctx context.Context, fn func(*gorm.DB) error) error {
	c.calls++
	return c.Conns.WithConn(ctx, fn)
}

func (c *countingConns) WithTx(ctx context.Context, fn func(*gorm.DB) error) error {
	c.calls++
	return c.Conns.WithTx(ctx, fn)
}
