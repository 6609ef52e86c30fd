package adaptor

import (
	"errors"
	"net/http"

	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Movie    *MovieHandler
	Cinema   *CinemaHandler
	Showtime *ShowtimeHandler
	Purchase *PurchaseHandler
	Setting  *SettingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Cinema:   NewCinemaHandler(service.Cinema, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Purchase: NewPurchaseHandler(service.Purchase, log),
		Setting:  NewSettingHandler(service.Setting, log),
	}
}

// handleServiceError maps service error kinds to HTTP status codes. The
// services wrap the usecase sentinels, so errors.Is sees through the
// context added along the way.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrSchedulingConflict),
		errors.Is(err, usecase.ErrSeatsUnavailable),
		errors.Is(err, usecase.ErrInvalidState),
		errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseJSON(w, http.StatusConflict, false, err.Error(), nil, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
