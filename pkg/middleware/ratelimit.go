package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"cinema-manager/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP per minute using a redis counter.
// A nil client disables the limiter entirely.
func RateLimit(client *redis.Client, perMinute int, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil || perMinute <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			// One counter per IP per wall-clock minute; the key expires on
			// its own so there is nothing to sweep.
			key := fmt.Sprintf("ratelimit:%s:%s", ip, time.Now().Format("200601021504"))

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				// Redis being down must not take the API with it
				logger.Warn("Rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, time.Minute)
			}

			if count > int64(perMinute) {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.Int64("count", count))
				utils.ResponseJSON(w, http.StatusTooManyRequests, false, "Too many requests", nil, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
