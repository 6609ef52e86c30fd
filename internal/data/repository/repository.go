package repository

import (
	"cinema-manager/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Movie      MovieRepository
	Genre      GenreRepository
	MovieGenre MovieGenreRepository
	Cinema     CinemaRepository
	Hall       HallRepository
	Showtime   ShowtimeRepository
	Purchase   PurchaseRepository
	Setting    SettingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		Genre:      NewGenreRepository(db, log),
		MovieGenre: NewMovieGenreRepository(db, log),
		Cinema:     NewCinemaRepository(db, log),
		Hall:       NewHallRepository(db, log),
		Showtime:   NewShowtimeRepository(db, log),
		Purchase:   NewPurchaseRepository(db, log),
		Setting:    NewSettingRepository(db, log),
	}
}
