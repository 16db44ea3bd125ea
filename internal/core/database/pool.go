package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

var (
	ErrPoolExhausted = errors.New("connection pool exhausted")
	ErrTxActive      = errors.New("transaction already active")
	ErrNoTx          = errors.New("no active transaction")
	ErrReleased      = errors.New("connection already released")
)

var (
	poolWait = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "db_pool_acquire_seconds",
		Help:    "Time spent waiting for a pooled connection",
		Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
	})
	poolExhausted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "db_pool_exhausted_total",
		Help: "Acquire calls that gave up waiting for a connection",
	})
	poolInUse = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_in_use",
		Help: "Connections currently borrowed by a unit of work",
	})
)

func init() { prometheus.MustRegister(poolWait, poolExhausted, poolInUse) }

// Pool 每个业务操作借一条连接；容量与 database/sql 的 MaxOpenConns 对齐，
// 超过 acquireTimeout 仍拿不到就返回 ErrPoolExhausted
type Pool struct {
	db             *gorm.DB
	sem            *semaphore.Weighted
	acquireTimeout time.Duration
	log            *zap.Logger
}

func NewPool(db *gorm.DB, size int64, acquireTimeout time.Duration, l *zap.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if acquireTimeout <= 0 {
		acquireTimeout = 3 * time.Second
	}
	return &Pool{
		db:             db,
		sem:            semaphore.NewWeighted(size),
		acquireTimeout: acquireTimeout,
		log:            l.Named("pool"),
	}
}

// Acquire 调用方必须在所有路径上 Release
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	start := time.Now()
	wctx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()
	if err := p.sem.Acquire(wctx, 1); err != nil {
		poolWait.Observe(time.Since(start).Seconds())
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		poolExhausted.Inc()
		p.log.Warn("acquire timed out", zap.Duration("waited", time.Since(start)))
		return nil, ErrPoolExhausted
	}
	poolWait.Observe(time.Since(start).Seconds())

	sqlDB, err := p.db.DB()
	if err != nil {
		p.sem.Release(1)
		return nil, err
	}
	raw, err := sqlDB.Conn(ctx)
	if err != nil {
		p.sem.Release(1)
		return nil, fmt.Errorf("checkout connection: %w", err)
	}

	// 与 gorm.DB.Connection 相同做法：把会话钉在这条物理连接上
	session := p.db.WithContext(ctx)
	session.Statement.ConnPool = raw

	poolInUse.Inc()
	return &Conn{session: session, raw: raw, done: func() {
		poolInUse.Dec()
		p.sem.Release(1)
	}}, nil
}

// WithConn 借连接执行 fn，无论成功失败都归还
func (p *Pool) WithConn(ctx context.Context, fn func(db *gorm.DB) error) error {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()
	return fn(c.DB())
}

// WithTx begin -> fn -> commit|rollback -> release，panic 时回滚后继续抛出
func (p *Pool) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	c, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release()

	if err = c.Begin(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = c.Rollback()
			panic(r)
		}
	}()

	if err = fn(c.DB()); err != nil {
		if rbErr := c.Rollback(); rbErr != nil {
			p.log.Error("rollback failed", zap.Error(rbErr), zap.NamedError("cause", err))
		}
		return err
	}
	return c.Commit()
}

// Conn 一次借出的连接；同一时刻最多一个事务
type Conn struct {
	mu       sync.Mutex
	session  *gorm.DB
	tx       *gorm.DB
	raw      *sql.Conn
	done     func()
	released bool
}

// DB 事务中返回事务句柄，否则返回连接句柄
func (c *Conn) DB() *gorm.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx != nil {
		return c.tx
	}
	return c.session
}

func (c *Conn) Begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return ErrReleased
	}
	if c.tx != nil {
		return ErrTxActive
	}
	tx := c.session.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	c.tx = tx
	return nil
}

func (c *Conn) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx == nil {
		return ErrNoTx
	}
	tx := c.tx
	c.tx = nil
	return tx.Commit().Error
}

func (c *Conn) Rollback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollbackLocked()
}

func (c *Conn) rollbackLocked() error {
	if c.tx == nil {
		return ErrNoTx
	}
	tx := c.tx
	c.tx = nil
	return tx.Rollback().Error
}

// Release 幂等；未提交的事务先回滚
func (c *Conn) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	if c.tx != nil {
		_ = c.rollbackLocked()
	}
	_ = c.raw.Close()
	c.done()
}
