package response

import "cinema-manager/internal/data/entity"

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID.String(),
		Name: genre.Name,
	}
}

func GenresToResponse(genres []*entity.Genre) []GenreResponse {
	resp := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		resp = append(resp, GenreToResponse(genre))
	}
	return resp
}
