package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type ShowtimeResponse struct {
	ID              string    `json:"id"`
	MovieID         string    `json:"movie_id"`
	HallID          string    `json:"hall_id"`
	StartedDateTime time.Time `json:"started_date_time"`
	EndedDateTime   time.Time `json:"ended_date_time"`
	MovieTitle      string    `json:"movie_title,omitempty"`
	TicketPrice     float64   `json:"ticket_price,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func ShowtimeToResponse(showtime *entity.Showtime, movie *entity.Movie) ShowtimeResponse {
	resp := ShowtimeResponse{
		ID:              showtime.ID.String(),
		MovieID:         showtime.MovieID.String(),
		HallID:          showtime.HallID.String(),
		StartedDateTime: showtime.StartedDateTime,
		EndedDateTime:   showtime.EndedDateTime,
		CreatedAt:       showtime.CreatedAt,
	}

	if movie != nil {
		resp.MovieTitle = movie.Title
		resp.TicketPrice = movie.TicketPrice
	}

	return resp
}
