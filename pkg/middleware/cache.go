package middleware

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRecorder struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

func (cr *cacheRecorder) WriteHeader(code int) {
	cr.statusCode = code
	cr.ResponseWriter.WriteHeader(code)
}

func (cr *cacheRecorder) Write(b []byte) (int, error) {
	cr.body = append(cr.body, b...)
	return cr.ResponseWriter.Write(b)
}

// Cache serves successful GET responses from redis for the given TTL.
// Listings and seat maps tolerate short staleness; everything mutating goes
// around the cache because only GETs are considered. A nil client disables
// caching.
func Cache(client *redis.Client, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil || ttl <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := "cache:" + r.URL.RequestURI()

			cached, err := client.Get(r.Context(), key).Bytes()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}
			if err != redis.Nil {
				logger.Warn("Cache read failed", zap.Error(err))
			}

			recorder := &cacheRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.statusCode == http.StatusOK && len(recorder.body) > 0 {
				if err := client.Set(r.Context(), key, recorder.body, ttl).Err(); err != nil {
					logger.Warn("Cache write failed", zap.Error(err))
				}
			}
		})
	}
}
