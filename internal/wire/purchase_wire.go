package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePurchase(
	r chi.Router,
	purchaseHandler *adaptor.PurchaseHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/purchases", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/initiate", purchaseHandler.InitiatePurchase)
		r.Post("/{id}/create", purchaseHandler.CreatePurchase)
		r.Post("/{id}/execute", purchaseHandler.ExecutePurchase)
		r.Get("/{id}", purchaseHandler.GetPurchaseByID)
	})

	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Get("/api/user/purchases", purchaseHandler.GetUserPurchases)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/purchases", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", purchaseHandler.GetPurchases)
	})
}
