package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	mdw "storefront-api/internal/transport/http/middleware"
)

// Limits 两个引擎共用的流控参数
type Limits struct {
	RPS         rate.Limit
	Burst       int
	PerIP       bool
	Concurrency int64
	MaxBody     int64
	Timeout     time.Duration
}

var (
	APILimits   = Limits{RPS: 50, Burst: 100, PerIP: true, Concurrency: 300, MaxBody: 1 << 20, Timeout: 10 * time.Second}
	AdminLimits = Limits{RPS: 200, Burst: 400, Concurrency: 300, MaxBody: 16 << 20, Timeout: 10 * time.Second}
)

func stack(l *zap.Logger, lim Limits) []gin.HandlerFunc {
	limiter := mdw.RateLimit(lim.RPS, lim.Burst)
	if lim.PerIP {
		limiter = mdw.RateLimitPerIP(lim.RPS, lim.Burst)
	}
	return []gin.HandlerFunc{
		mdw.RequestID(),
		limiter,
		mdw.ConcurrencyLimit(lim.Concurrency),
		mdw.MaxBodyBytes(lim.MaxBody),
		mdw.Timeout(lim.Timeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	}
}
