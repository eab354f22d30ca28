package httpadapter

import (
	"context"
	"strings"
	"sync"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware echoes the caller's X-Request-ID or mints one.
func RequestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := strings.TrimSpace(string(ctx.GetHeader(requestIDHeader)))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDKey, id)
		ctx.Response.Header.Set(requestIDHeader, id)
		ctx.Next(c)
	}
}

func requestID(ctx *app.RequestContext) string {
	return ctx.GetString(requestIDKey)
}

// maxLimiters bounds the per-client table; it is dropped wholesale when full.
const maxLimiters = 4096

type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	key      func(*app.RequestContext) string
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: map[string]*rate.Limiter{},
		limit:    rate.Limit(perSecond),
		burst:    burst,
		key:      func(ctx *app.RequestContext) string { return ctx.ClientIP() },
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxLimiters {
			l.limiters = map[string]*rate.Limiter{}
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

func (l *RateLimiter) Middleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if l.limit <= 0 || l.allow(l.key(ctx)) {
			ctx.Next(c)
			return
		}
		writeErrorBody(ctx, consts.StatusTooManyRequests, "rate_limited", "too many requests")
		ctx.Abort()
	}
}
