package scheduling

// Allocate picks numberTickets free seats from the grid, walking the seat
// labels once in row-major reading order and skipping any label already
// taken. The scan is deterministic on purpose: the same grid and taken set
// always yield the same seats, so allocation is reproducible and seats are
// filled first-available rather than user-chosen.
//
// Returns ErrInsufficientCapacity when fewer than numberTickets seats remain;
// it never returns a partial allocation.
func Allocate(grid SeatGrid, numberTickets int, seatsTaken map[string]struct{}) ([]string, error) {
	if numberTickets <= 0 {
		return nil, ErrInsufficientCapacity
	}

	if grid.Capacity()-len(seatsTaken) < numberTickets {
		return nil, ErrInsufficientCapacity
	}

	chosen := make([]string, 0, numberTickets)
	for _, row := range grid.Rows {
		for _, col := range grid.Columns {
			label := row + col
			if _, taken := seatsTaken[label]; taken {
				continue
			}

			chosen = append(chosen, label)
			if len(chosen) == numberTickets {
				return chosen, nil
			}
		}
	}

	// The taken set may contain labels outside the grid, so the capacity
	// check above is not enough on its own.
	return nil, ErrInsufficientCapacity
}

// TakenSet converts seat label slices into the lookup set Allocate expects
func TakenSet(seatGroups ...[]string) map[string]struct{} {
	taken := make(map[string]struct{})
	for _, seats := range seatGroups {
		for _, label := range seats {
			taken[label] = struct{}{}
		}
	}
	return taken
}
