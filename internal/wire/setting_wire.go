package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSetting(
	r chi.Router,
	settingHandler *adaptor.SettingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/settings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", settingHandler.GetSettings)
		r.Get("/{key}", settingHandler.GetSettingByKey)
		r.Post("/", settingHandler.CreateSetting)
		r.Put("/{key}", settingHandler.UpdateSetting)
		r.Delete("/{key}", settingHandler.DeleteSetting)
	})
}
