package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type MovieResponse struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Description       *string              `json:"description,omitempty"`
	PosterURL         *string              `json:"poster_url,omitempty"`
	Rating            float64              `json:"rating"`
	ReleaseDate       time.Time            `json:"release_date"`
	DurationInMinutes int                  `json:"duration_in_minutes"`
	TicketPrice       float64              `json:"ticket_price"`
	ReleaseStatus     entity.ReleaseStatus `json:"release_status"`
	Genres            []GenreResponse      `json:"genres"`
	CreatedAt         time.Time            `json:"created_at"`
}

func MovieToResponse(movie *entity.Movie, genres []*entity.Genre) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		PosterURL:         movie.PosterURL,
		Rating:            movie.Rating,
		ReleaseDate:       movie.ReleaseDate,
		DurationInMinutes: movie.DurationInMinutes,
		TicketPrice:       movie.TicketPrice,
		ReleaseStatus:     movie.ReleaseStatus,
		Genres:            GenresToResponse(genres),
		CreatedAt:         movie.CreatedAt,
	}
}
