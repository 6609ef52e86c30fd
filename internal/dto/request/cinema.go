package request

type CinemaRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location" validate:"required,min=5"`
	City     string `json:"city" validate:"required,min=2,max=50"`
}

type CinemaUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,min=5"`
	City     *string `json:"city,omitempty" validate:"omitempty,min=2,max=50"`
}

// HallRequest declares a hall's seat geometry once: ordered row labels and
// ordered column labels. Seat labels are derived, never stored per seat.
type HallRequest struct {
	HallNumber  int      `json:"hall_number" validate:"required,min=1"`
	SeatRows    []string `json:"seat_rows" validate:"required,min=1,dive,required"`
	SeatColumns []string `json:"seat_columns" validate:"required,min=1,dive,required"`
}

type HallUpdateRequest struct {
	HallNumber  *int     `json:"hall_number,omitempty" validate:"omitempty,min=1"`
	SeatRows    []string `json:"seat_rows,omitempty" validate:"omitempty,min=1,dive,required"`
	SeatColumns []string `json:"seat_columns,omitempty" validate:"omitempty,min=1,dive,required"`
}
