package wire

import (
	"net/http"

	"cinema-manager/internal/adaptor"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCinema(
	r chi.Router,
	cinemaHandler *adaptor.CinemaHandler,
	repo *repository.Repository,
	cache func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(cache).Get("/api/cinemas", cinemaHandler.GetCinemas)
	r.With(cache).Get("/api/cinemas/{id}", cinemaHandler.GetCinemaByID)
	r.With(cache).Get("/api/cinemas/{id}/halls", cinemaHandler.GetHalls)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/cinemas", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", cinemaHandler.CreateCinema)
		r.Put("/{id}", cinemaHandler.UpdateCinema)
		r.Delete("/{id}", cinemaHandler.DeleteCinema)
		r.Post("/{id}/halls", cinemaHandler.CreateHall)
	})

	r.Route("/api/admin/halls", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Put("/{id}", cinemaHandler.UpdateHall)
		r.Delete("/{id}", cinemaHandler.DeleteHall)
	})
}
