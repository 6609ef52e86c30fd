package request

type InitiatePurchaseRequest struct {
	ShowtimeID    string `json:"showtime_id" validate:"required,uuid"`
	NumberTickets int    `json:"number_tickets" validate:"required,min=1"`
}

// CreatePurchaseRequest finalizes an initiated purchase. ChosenSeats must be
// a subset of the seats held at initiation with the same cardinality.
type CreatePurchaseRequest struct {
	ChosenSeats    []string `json:"chosen_seats" validate:"required,min=1,dive,required"`
	DiscountType   *string  `json:"discount_type,omitempty" validate:"omitempty,oneof=flat percent"`
	DiscountAmount *float64 `json:"discount_amount,omitempty" validate:"omitempty,gte=0"`
}

type ExecutePurchaseRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,min=2,max=50"`
}
