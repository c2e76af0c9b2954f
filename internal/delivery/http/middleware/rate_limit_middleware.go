package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"vet-clinic/config"
	"vet-clinic/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimitMiddleware is a fixed-window limiter shared by every instance through Redis.
// Authenticated requests are counted per user, anonymous ones per client IP.
type RateLimitMiddleware struct {
	redisClient *redis.Client
	log         *logrus.Logger
	limit       int
	window      time.Duration
}

func NewRateLimitMiddleware(redisClient *redis.Client, cfg config.RateLimitConfig, log *logrus.Logger) *RateLimitMiddleware {
	limit, window := cfg.Requests, cfg.Window
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimitMiddleware{
		redisClient: redisClient,
		log:         log,
		limit:       limit,
		window:      window,
	}
}

func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, err := m.incr(r.Context(), "rate_limit:"+clientKey(r))
		if err != nil {
			// Fail open, the slot checks still protect the data
			m.log.Warnf("Failed to apply rate limit: %+v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count > int64(m.limit) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(m.window.Seconds())))
			response.TooManyRequests(w, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) incr(ctx context.Context, key string) (int64, error) {
	return fixedWindowScript.Run(ctx, m.redisClient, []string{key}, m.window.Milliseconds()).Int64()
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")
		return "ip:" + strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return "ip:" + host
	}
	return "ip:" + r.RemoteAddr
}
