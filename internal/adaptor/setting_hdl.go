package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SettingHandler struct {
	service usecase.SettingService
	log     *zap.Logger
}

func NewSettingHandler(service usecase.SettingService, log *zap.Logger) *SettingHandler {
	return &SettingHandler{
		service: service,
		log:     log.With(zap.String("handler", "setting")),
	}
}

// GetSettings handles GET /api/admin/settings
func (h *SettingHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// GetSettingByKey handles GET /api/admin/settings/{key}
func (h *SettingHandler) GetSettingByKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		utils.ResponseBadRequest(w, "Setting key is required", nil)
		return
	}

	setting, err := h.service.GetSettingByKey(r.Context(), key)
	if err != nil {
		handleServiceError(w, h.log, err, "get setting by key")
		return
	}

	utils.ResponseSuccess(w, "success", setting)
}

// CreateSetting handles POST /api/admin/settings
func (h *SettingHandler) CreateSetting(w http.ResponseWriter, r *http.Request) {
	var req request.SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	setting, err := h.service.CreateSetting(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create setting")
		return
	}

	utils.ResponseCreated(w, "success", setting)
}

// UpdateSetting handles PUT /api/admin/settings/{key}
func (h *SettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		utils.ResponseBadRequest(w, "Setting key is required", nil)
		return
	}

	var req request.SettingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	setting, err := h.service.UpdateSetting(r.Context(), key, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update setting")
		return
	}

	utils.ResponseSuccess(w, "success", setting)
}

// DeleteSetting handles DELETE /api/admin/settings/{key}
func (h *SettingHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		utils.ResponseBadRequest(w, "Setting key is required", nil)
		return
	}

	if err := h.service.DeleteSetting(r.Context(), key); err != nil {
		handleServiceError(w, h.log, err, "delete setting")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
