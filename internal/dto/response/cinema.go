package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type CinemaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

type HallResponse struct {
	ID          string   `json:"id"`
	CinemaID    string   `json:"cinema_id"`
	HallNumber  int      `json:"hall_number"`
	SeatRows    []string `json:"seat_rows"`
	SeatColumns []string `json:"seat_columns"`
	TotalSeats  int      `json:"total_seats"`
}

// SeatAvailabilityResponse describes the seat map of a showtime: every
// seat label in the hall plus the subset currently taken by active
// purchases.
type SeatAvailabilityResponse struct {
	ShowtimeID     string   `json:"showtime_id"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats []string `json:"available_seats"`
	TakenSeats     []string `json:"taken_seats"`
}

func CinemaToResponse(cinema *entity.Cinema) CinemaResponse {
	return CinemaResponse{
		ID:        cinema.ID.String(),
		Name:      cinema.Name,
		Location:  cinema.Location,
		City:      cinema.City,
		CreatedAt: cinema.CreatedAt,
	}
}

func HallToResponse(hall *entity.Hall) HallResponse {
	return HallResponse{
		ID:          hall.ID.String(),
		CinemaID:    hall.CinemaID.String(),
		HallNumber:  hall.HallNumber,
		SeatRows:    hall.SeatRows,
		SeatColumns: hall.SeatColumns,
		TotalSeats:  hall.TotalSeats(),
	}
}
