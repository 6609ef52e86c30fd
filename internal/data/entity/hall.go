package entity

import "github.com/google/uuid"

// Hall seat geometry is an ordered row label list and an ordered column
// label list; a seat label is row+column ("A1"). The arrays are declared
// once per hall and treated as read-only by the scheduling core.
type Hall struct {
	Base
	CinemaID    uuid.UUID `db:"cinema_id"`
	HallNumber  int       `db:"hall_number"`
	SeatRows    []string  `db:"seat_rows"`
	SeatColumns []string  `db:"seat_columns"`
}

// TotalSeats = |rows| x |columns|
func (h *Hall) TotalSeats() int {
	return len(h.SeatRows) * len(h.SeatColumns)
}
