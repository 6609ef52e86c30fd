package scheduling

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	// Existing showtime: 17:00 - 19:00 (120 minute movie), buffer 30 minutes
	existing := []Interval{
		{
			Start: time.Date(2023, 10, 20, 17, 0, 0, 0, time.UTC),
			End:   time.Date(2023, 10, 20, 19, 0, 0, 0, time.UTC),
		},
	}
	buffer := 30 * time.Minute

	tests := []struct {
		name   string
		start  time.Time
		expect bool
	}{
		{
			name:   "inside the buffered window conflicts",
			start:  time.Date(2023, 10, 20, 19, 29, 0, 0, time.UTC),
			expect: true,
		},
		{
			name:   "touching the buffered boundary is allowed",
			start:  time.Date(2023, 10, 20, 19, 30, 0, 0, time.UTC),
			expect: false,
		},
		{
			name:   "well after the window",
			start:  time.Date(2023, 10, 20, 22, 0, 0, 0, time.UTC),
			expect: false,
		},
		{
			name:   "identical start conflicts",
			start:  time.Date(2023, 10, 20, 17, 0, 0, 0, time.UTC),
			expect: true,
		},
		{
			name:   "candidate fully containing the existing showtime conflicts",
			start:  time.Date(2023, 10, 20, 16, 0, 0, 0, time.UTC),
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := tt.start.Add(120 * time.Minute)
			if got := Overlaps(tt.start, end, buffer, existing); got != tt.expect {
				t.Errorf("Overlaps(%s) = %v, want %v", tt.start.Format("15:04"), got, tt.expect)
			}
		})
	}
}

func TestOverlapsBeforeExisting(t *testing.T) {
	existing := []Interval{
		{
			Start: time.Date(2023, 10, 20, 17, 0, 0, 0, time.UTC),
			End:   time.Date(2023, 10, 20, 19, 0, 0, 0, time.UTC),
		},
	}
	buffer := 30 * time.Minute

	// Ends exactly 30 minutes before the existing start: allowed
	start := time.Date(2023, 10, 20, 14, 30, 0, 0, time.UTC)
	end := time.Date(2023, 10, 20, 16, 30, 0, 0, time.UTC)
	if Overlaps(start, end, buffer, existing) {
		t.Error("expected no conflict when ending exactly one buffer before")
	}

	// One minute later: conflict
	if !Overlaps(start.Add(time.Minute), end.Add(time.Minute), buffer, existing) {
		t.Error("expected conflict when ending inside the buffer")
	}
}

func TestOverlapsZeroBuffer(t *testing.T) {
	existing := []Interval{
		{
			Start: time.Date(2023, 10, 20, 17, 0, 0, 0, time.UTC),
			End:   time.Date(2023, 10, 20, 19, 0, 0, 0, time.UTC),
		},
	}

	// Back-to-back with zero buffer is allowed
	start := time.Date(2023, 10, 20, 19, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	if Overlaps(start, end, 0, existing) {
		t.Error("expected back-to-back showtimes to pass with zero buffer")
	}
}

func TestOverlapsNoExisting(t *testing.T) {
	start := time.Date(2023, 10, 20, 17, 0, 0, 0, time.UTC)
	if Overlaps(start, start.Add(time.Hour), 30*time.Minute, nil) {
		t.Error("expected no conflict against empty hall")
	}
}

func TestRules(t *testing.T) {
	rules := DefaultRules()

	if rules.MinIntervalMinutes != DefaultMinIntervalMinutes {
		t.Errorf("MinIntervalMinutes = %d, want %d", rules.MinIntervalMinutes, DefaultMinIntervalMinutes)
	}
	if got := rules.Buffer(); got != 30*time.Minute {
		t.Errorf("Buffer() = %s, want 30m", got)
	}
	if got := rules.SeatSelectionWindow(); got != 10*time.Minute {
		t.Errorf("SeatSelectionWindow() = %s, want 10m", got)
	}
}
