// Package app 两个入口共用的装配：配置 -> DB -> 迁移 -> 连接池 -> 缓存 -> 服务
package app

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/core/cache"
	"storefront-api/internal/core/config"
	"storefront-api/internal/core/database"
	"storefront-api/internal/feature"
	"storefront-api/internal/repo"
	"storefront-api/internal/service"
	"storefront-api/pkg/utils"
)

var ErrNoJWTSecret = errors.New("jwt.secret is required")

type App struct {
	Log      *zap.Logger
	DB       *gorm.DB
	Services *service.Services
	JWT      *auth.JWTer

	cache *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	if cfg.JWT.Secret == "" {
		return nil, ErrNoJWTSecret
	}

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := feature.Migrate(ctx, db); err != nil {
			closeDB(db)
			return nil, err
		}
		l.Info("automigrate done")
	}

	a := &App{Log: l, DB: db, JWT: auth.New(cfg.JWT)}
	deps := service.Deps{
		Conns:    database.NewPool(db, int64(cfg.DB.MaxOpenConns), cfg.DB.AcquireTimeout(), l),
		Repos:    service.GormRepos(),
		Hasher:   utils.Bcrypt{Cost: cfg.Password.Cost},
		CacheTTL: cfg.Redis.CacheTTL(),
		Limits:   repo.Limits{DefaultSize: cfg.Pagination.DefaultSize, MaxSize: cfg.Pagination.MaxSize},
		Log:      l,
	}
	// 接口变量只在真正有 redis 时赋值，避免 typed nil
	if cfg.Redis.Addr != "" {
		a.cache = cache.New(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, l)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.cache.Ping(pctx); err != nil {
			l.Warn("redis unreachable, reads fall through to the database", zap.Error(err))
		}
		cancel()
		deps.Cache = a.cache
	}
	a.Services = service.New(deps)
	return a, nil
}

func (a *App) Close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	closeDB(a.DB)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
