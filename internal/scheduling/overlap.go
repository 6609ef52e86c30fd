package scheduling

import "time"

// Interval is an existing showtime's screening window
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a candidate window [start, end] padded by buffer
// on both sides collides with any existing interval. An existing showtime
// conflicts when its end is after start-buffer AND its start is before
// end+buffer. Both comparisons are strict, so two showtimes touching exactly
// at the buffered boundary are allowed: the buffer guarantees the turnover
// gap, not a gap on top of it.
func Overlaps(start, end time.Time, buffer time.Duration, existing []Interval) bool {
	paddedStart := start.Add(-buffer)
	paddedEnd := end.Add(buffer)

	for _, iv := range existing {
		if iv.End.After(paddedStart) && iv.Start.Before(paddedEnd) {
			return true
		}
	}
	return false
}
