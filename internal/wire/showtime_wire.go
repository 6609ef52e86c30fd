package wire

import (
	"net/http"

	"cinema-manager/internal/adaptor"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	repo *repository.Repository,
	cache func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(cache).Get("/api/showtimes", showtimeHandler.GetShowtimes)
	r.With(cache).Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeByID)
	// Seat maps are not cached: a stale map shows sold seats as free
	r.Get("/api/showtimes/{id}/seats", showtimeHandler.GetSeatAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", showtimeHandler.CreateShowtime)
		r.Put("/{id}", showtimeHandler.UpdateShowtime)
		r.Delete("/{id}", showtimeHandler.DeleteShowtime)
	})
}
