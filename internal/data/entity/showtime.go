package entity

import (
	"time"

	"github.com/google/uuid"
)

// Showtime screening window. EndedDateTime is always derived from the
// referenced movie's duration at create/update time, never set directly.
type Showtime struct {
	Base
	MovieID         uuid.UUID `db:"movie_id"`
	HallID          uuid.UUID `db:"hall_id"`
	StartedDateTime time.Time `db:"started_datetime"`
	EndedDateTime   time.Time `db:"ended_datetime"`
}
