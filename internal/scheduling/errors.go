package scheduling

import "errors"

// ErrInsufficientCapacity is returned when a hall cannot seat the requested
// ticket count for a showtime. Allocation never returns a partial result.
var ErrInsufficientCapacity = errors.New("insufficient seat capacity")
