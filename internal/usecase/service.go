package usecase

import (
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Movie    MovieService
	Cinema   CinemaService
	Showtime ShowtimeService
	Purchase PurchaseService
	Setting  SettingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	// Shared between the showtime/purchase services and the setting
	// service: setting writes must invalidate the cached rules.
	rules := newRuleLoader(repo.Setting, log)
	locks := newShowtimeLocks()

	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Movie:    NewMovieService(repo, log),
		Cinema:   NewCinemaService(repo, log),
		Showtime: NewShowtimeService(repo, rules, log),
		Purchase: NewPurchaseService(repo, rules, locks, config, log),
		Setting:  NewSettingService(repo.Setting, rules, log),
	}
}
