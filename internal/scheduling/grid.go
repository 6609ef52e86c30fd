package scheduling

// SeatGrid is a hall's seat geometry as ordered row and column labels.
// A seat label is the row label concatenated with the column label ("A1").
// The grid is treated as an immutable value: callers hand copies around and
// concurrent reads always see a stable layout.
type SeatGrid struct {
	Rows    []string
	Columns []string
}

func NewSeatGrid(rows, columns []string) SeatGrid {
	r := make([]string, len(rows))
	copy(r, rows)
	c := make([]string, len(columns))
	copy(c, columns)
	return SeatGrid{Rows: r, Columns: c}
}

// Capacity is the total seat count, |rows| x |columns|
func (g SeatGrid) Capacity() int {
	return len(g.Rows) * len(g.Columns)
}

// Labels enumerates every seat label in row-major order: outer loop over
// rows as declared, inner loop over columns as declared.
func (g SeatGrid) Labels() []string {
	labels := make([]string, 0, g.Capacity())
	for _, row := range g.Rows {
		for _, col := range g.Columns {
			labels = append(labels, row+col)
		}
	}
	return labels
}

// Contains reports whether label names a seat in this grid
func (g SeatGrid) Contains(label string) bool {
	for _, row := range g.Rows {
		for _, col := range g.Columns {
			if row+col == label {
				return true
			}
		}
	}
	return false
}
