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

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/showtimes (public)
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	filter := &request.ShowtimeFilterRequest{}
	if movieID := query.Get("movie_id"); movieID != "" {
		filter.MovieID = &movieID
	}
	if hallID := query.Get("hall_id"); hallID != "" {
		filter.HallID = &hallID
	}
	if date := query.Get("date"); date != "" {
		filter.Date = &date
	}

	showtimes, err := h.service.GetShowtimes(r.Context(), req, filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtimeByID handles GET /api/showtimes/{id} (public)
func (h *ShowtimeHandler) GetShowtimeByID(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	showtime, err := h.service.GetShowtimeByID(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime by ID")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// GetSeatAvailability handles GET /api/showtimes/{id}/seats (public)
func (h *ShowtimeHandler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	seats, err := h.service.GetSeatAvailability(r.Context(), showtimeID)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// CreateShowtime handles POST /api/admin/showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "success", showtime)
}

// UpdateShowtime handles PUT /api/admin/showtimes/{id}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	var req request.ShowtimeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), showtimeID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// DeleteShowtime handles DELETE /api/admin/showtimes/{id}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID := chi.URLParam(r, "id")
	if showtimeID == "" {
		utils.ResponseBadRequest(w, "Showtime ID is required", nil)
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), showtimeID); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
