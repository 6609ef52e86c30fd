package request

// ShowtimeRequest carries the start instant only; the end is always derived
// from the movie's duration by the showtime service.
type ShowtimeRequest struct {
	MovieID         string `json:"movie_id" validate:"required,uuid"`
	HallID          string `json:"hall_id" validate:"required,uuid"`
	StartedDateTime string `json:"started_datetime" validate:"required"`
}

// ShowtimeFilterRequest narrows showtime listings; all fields optional
type ShowtimeFilterRequest struct {
	MovieID *string `json:"movie_id,omitempty" validate:"omitempty,uuid"`
	HallID  *string `json:"hall_id,omitempty" validate:"omitempty,uuid"`
	Date    *string `json:"date,omitempty"`
}

type ShowtimeUpdateRequest struct {
	MovieID         *string `json:"movie_id,omitempty" validate:"omitempty,uuid"`
	HallID          *string `json:"hall_id,omitempty" validate:"omitempty,uuid"`
	StartedDateTime *string `json:"started_datetime,omitempty"`
}
