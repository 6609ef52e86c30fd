// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"cinema-manager/internal/adaptor"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/middleware"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes. The redis client may be
// nil; caching and rate limiting are skipped then.
func Wiring(repo *repository.Repository, redisClient *redis.Client, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, redisClient, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	redisClient *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(redisClient, config.Redis.RateLimitPerMin, logger))

	// Short-lived cache for the public read endpoints
	cache := middleware.Cache(redisClient, time.Duration(config.Redis.CacheTTLSeconds)*time.Second, logger)

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireMovie(r, handler.Movie, repo, cache, logger)
	wireCinema(r, handler.Cinema, repo, cache, logger)
	wireShowtime(r, handler.Showtime, repo, cache, logger)
	wirePurchase(r, handler.Purchase, repo, logger)
	wireSetting(r, handler.Setting, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
