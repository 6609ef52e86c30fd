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

type CinemaHandler struct {
	service usecase.CinemaService
	log     *zap.Logger
}

func NewCinemaHandler(service usecase.CinemaService, log *zap.Logger) *CinemaHandler {
	return &CinemaHandler{
		service: service,
		log:     log.With(zap.String("handler", "cinema")),
	}
}

// GetCinemas handles GET /api/cinemas (public)
func (h *CinemaHandler) GetCinemas(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	var cityFilter *string
	if city := query.Get("city"); city != "" {
		cityFilter = &city
	}

	cinemas, err := h.service.GetCinemas(r.Context(), req, cityFilter)
	if err != nil {
		handleServiceError(w, h.log, err, "get cinemas")
		return
	}

	utils.ResponseSuccess(w, "success", cinemas)
}

// GetCinemaByID handles GET /api/cinemas/{id} (public)
func (h *CinemaHandler) GetCinemaByID(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	cinema, err := h.service.GetCinemaByID(r.Context(), cinemaID)
	if err != nil {
		handleServiceError(w, h.log, err, "get cinema by ID")
		return
	}

	utils.ResponseSuccess(w, "success", cinema)
}

// CreateCinema handles POST /api/admin/cinemas
func (h *CinemaHandler) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req request.CinemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cinema, err := h.service.CreateCinema(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create cinema")
		return
	}

	utils.ResponseCreated(w, "success", cinema)
}

// UpdateCinema handles PUT /api/admin/cinemas/{id}
func (h *CinemaHandler) UpdateCinema(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	var req request.CinemaUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cinema, err := h.service.UpdateCinema(r.Context(), cinemaID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update cinema")
		return
	}

	utils.ResponseSuccess(w, "success", cinema)
}

// DeleteCinema handles DELETE /api/admin/cinemas/{id}
func (h *CinemaHandler) DeleteCinema(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	if err := h.service.DeleteCinema(r.Context(), cinemaID); err != nil {
		handleServiceError(w, h.log, err, "delete cinema")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetHalls handles GET /api/cinemas/{id}/halls (public)
func (h *CinemaHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	halls, err := h.service.GetHalls(r.Context(), cinemaID)
	if err != nil {
		handleServiceError(w, h.log, err, "get halls")
		return
	}

	utils.ResponseSuccess(w, "success", halls)
}

// CreateHall handles POST /api/admin/cinemas/{id}/halls
func (h *CinemaHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	cinemaID := chi.URLParam(r, "id")
	if cinemaID == "" {
		utils.ResponseBadRequest(w, "Cinema ID is required", nil)
		return
	}

	var req request.HallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.CreateHall(r.Context(), cinemaID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "success", hall)
}

// UpdateHall handles PUT /api/admin/halls/{id}
func (h *CinemaHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	var req request.HallUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), hallID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

// DeleteHall handles DELETE /api/admin/halls/{id}
func (h *CinemaHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	hallID := chi.URLParam(r, "id")
	if hallID == "" {
		utils.ResponseBadRequest(w, "Hall ID is required", nil)
		return
	}

	if err := h.service.DeleteHall(r.Context(), hallID); err != nil {
		handleServiceError(w, h.log, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
