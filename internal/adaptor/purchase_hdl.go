package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PurchaseHandler struct {
	service usecase.PurchaseService
	log     *zap.Logger
}

func NewPurchaseHandler(service usecase.PurchaseService, log *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		log:     log.With(zap.String("handler", "purchase")),
	}
}

// InitiatePurchase handles POST /api/purchases/initiate (protected)
func (h *PurchaseHandler) InitiatePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.InitiatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	purchase, err := h.service.InitiatePurchase(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "initiate purchase")
		return
	}

	utils.ResponseCreated(w, "success", purchase)
}

// CreatePurchase handles POST /api/purchases/{id}/create (protected)
func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	purchaseID := chi.URLParam(r, "id")
	if purchaseID == "" {
		utils.ResponseBadRequest(w, "Purchase ID is required", nil)
		return
	}

	var req request.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	purchase, err := h.service.CreatePurchase(r.Context(), userID, purchaseID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create purchase")
		return
	}

	utils.ResponseSuccess(w, "success", purchase)
}

// ExecutePurchase handles POST /api/purchases/{id}/execute (protected)
func (h *PurchaseHandler) ExecutePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	purchaseID := chi.URLParam(r, "id")
	if purchaseID == "" {
		utils.ResponseBadRequest(w, "Purchase ID is required", nil)
		return
	}

	var req request.ExecutePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	purchase, err := h.service.ExecutePurchase(r.Context(), userID, purchaseID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "execute purchase")
		return
	}

	utils.ResponseSuccess(w, "success", purchase)
}

// GetPurchaseByID handles GET /api/purchases/{id} (protected)
func (h *PurchaseHandler) GetPurchaseByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	purchaseID := chi.URLParam(r, "id")
	if purchaseID == "" {
		utils.ResponseBadRequest(w, "Purchase ID is required", nil)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	isAdmin := role == string(entity.RoleAdmin)

	purchase, err := h.service.GetPurchaseByID(r.Context(), userID, isAdmin, purchaseID)
	if err != nil {
		handleServiceError(w, h.log, err, "get purchase by ID")
		return
	}

	utils.ResponseSuccess(w, "success", purchase)
}

// GetUserPurchases handles GET /api/user/purchases (protected)
func (h *PurchaseHandler) GetUserPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	purchases, err := h.service.GetUserPurchases(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user purchases")
		return
	}

	utils.ResponseSuccess(w, "success", purchases)
}

// GetPurchases handles GET /api/admin/purchases
func (h *PurchaseHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	purchases, err := h.service.GetPurchases(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get purchases")
		return
	}

	utils.ResponseSuccess(w, "success", purchases)
}
