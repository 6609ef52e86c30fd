package scheduling

import "time"

// Setting keys the scheduling rules are loaded from
const (
	SettingMinIntervalMinutes    = "min_minutes_interval_showtime"
	SettingSeatSelectionMinutes  = "amount_minutes_seat_selection"
	SettingMaxTicketsPerPurchase = "max_number_tickets_per_purchase"
)

// Defaults applied when a setting row is absent
const (
	DefaultMinIntervalMinutes    = 30
	DefaultSeatSelectionMinutes  = 10
	DefaultMaxTicketsPerPurchase = 6
)

// Rules is the typed scheduling configuration injected into the showtime and
// purchase services, replacing ad hoc setting lookups by string key.
type Rules struct {
	MinIntervalMinutes         int
	SeatSelectionWindowMinutes int
	MaxTicketsPerPurchase      int
}

func DefaultRules() Rules {
	return Rules{
		MinIntervalMinutes:         DefaultMinIntervalMinutes,
		SeatSelectionWindowMinutes: DefaultSeatSelectionMinutes,
		MaxTicketsPerPurchase:      DefaultMaxTicketsPerPurchase,
	}
}

// Buffer is the minimum turnover gap between showtimes sharing a hall
func (r Rules) Buffer() time.Duration {
	return time.Duration(r.MinIntervalMinutes) * time.Minute
}

// SeatSelectionWindow is how long an initiated purchase holds its seats
func (r Rules) SeatSelectionWindow() time.Duration {
	return time.Duration(r.SeatSelectionWindowMinutes) * time.Minute
}
