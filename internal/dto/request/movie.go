package request

type MovieRequest struct {
	Title             string   `json:"title" validate:"required,min=1,max=200"`
	Description       *string  `json:"description,omitempty"`
	PosterURL         *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	ReleaseDate       string   `json:"release_date" validate:"required"`
	DurationInMinutes int      `json:"duration_in_minutes" validate:"required,min=1,max=600"`
	TicketPrice       float64  `json:"ticket_price" validate:"required,gt=0"`
	ReleaseStatus     string   `json:"release_status" validate:"required,oneof=now_playing coming_soon"`
	GenreIDs          []string `json:"genre_ids,omitempty" validate:"omitempty,dive,uuid"`
}

type MovieUpdateRequest struct {
	Title             *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string  `json:"description,omitempty"`
	PosterURL         *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	ReleaseDate       *string  `json:"release_date,omitempty"`
	DurationInMinutes *int     `json:"duration_in_minutes,omitempty" validate:"omitempty,min=1,max=600"`
	TicketPrice       *float64 `json:"ticket_price,omitempty" validate:"omitempty,gt=0"`
	ReleaseStatus     *string  `json:"release_status,omitempty" validate:"omitempty,oneof=now_playing coming_soon"`
	GenreIDs          []string `json:"genre_ids,omitempty" validate:"omitempty,dive,uuid"`
}
