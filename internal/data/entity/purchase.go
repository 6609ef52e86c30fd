package entity

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusInitiated PurchaseStatus = "initiated"
	PurchaseStatusCreated   PurchaseStatus = "created"
	PurchaseStatusExecuted  PurchaseStatus = "executed"
)

// CanTransitionTo enforces the forward-only lifecycle
// initiated -> created -> executed. Executed is terminal.
func (s PurchaseStatus) CanTransitionTo(next PurchaseStatus) bool {
	switch s {
	case PurchaseStatusInitiated:
		return next == PurchaseStatusCreated
	case PurchaseStatusCreated:
		return next == PurchaseStatusExecuted
	default:
		return false
	}
}

type DiscountType string

const (
	DiscountTypeNone    DiscountType = ""
	DiscountTypeFlat    DiscountType = "flat"
	DiscountTypePercent DiscountType = "percent"
)

type Purchase struct {
	Base
	PurchaseCode           string         `db:"purchase_code"`
	UserID                 uuid.UUID      `db:"user_id"`
	ShowtimeID             uuid.UUID      `db:"showtime_id"`
	NumberTickets          int            `db:"number_tickets"`
	ChosenSeats            []string       `db:"chosen_seats"`
	Status                 PurchaseStatus `db:"status"`
	OriginalAmount         float64        `db:"original_amount"`
	DiscountType           DiscountType   `db:"discount_type"`
	DiscountAmount         float64        `db:"discount_amount"`
	PaymentMethod          *string        `db:"payment_method"`
	PaymentAmount          *float64       `db:"payment_amount"`
	PaymentDate            *time.Time     `db:"payment_date"`
	ExpiredSeatSelectionAt time.Time      `db:"expired_seat_selection_at"`
	QRCodeImage            string         `db:"qrcode_image"`
}

// HoldExpired reports whether an initiated purchase's seat hold has lapsed.
// Only initiated purchases expire; created and executed seats stay committed.
func (p *Purchase) HoldExpired(now time.Time) bool {
	return p.Status == PurchaseStatusInitiated && !now.Before(p.ExpiredSeatSelectionAt)
}

// FinalAmount applies the discount to the original amount, floored at zero
func (p *Purchase) FinalAmount() float64 {
	amount := p.OriginalAmount
	switch p.DiscountType {
	case DiscountTypeFlat:
		amount -= p.DiscountAmount
	case DiscountTypePercent:
		amount *= 1 - p.DiscountAmount/100
	}

	if amount < 0 {
		return 0
	}
	return amount
}
