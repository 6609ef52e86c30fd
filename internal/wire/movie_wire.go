package wire

import (
	"net/http"

	"cinema-manager/internal/adaptor"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	cache func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(cache).Get("/api/movies", movieHandler.GetMovies)
	r.With(cache).Get("/api/movies/{id}", movieHandler.GetMovieByID)
	r.With(cache).Get("/api/genres", movieHandler.GetGenres)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})

	r.Route("/api/admin/genres", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", movieHandler.CreateGenre)
		r.Put("/{id}", movieHandler.UpdateGenre)
		r.Delete("/{id}", movieHandler.DeleteGenre)
	})
}
