package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type PurchaseResponse struct {
	ID                     string                `json:"id"`
	PurchaseCode           string                `json:"purchase_code"`
	UserID                 string                `json:"user_id"`
	ShowtimeID             string                `json:"showtime_id"`
	NumberTickets          int                   `json:"number_tickets"`
	ChosenSeats            []string              `json:"chosen_seats"`
	Status                 entity.PurchaseStatus `json:"status"`
	OriginalAmount         float64               `json:"original_amount"`
	DiscountType           entity.DiscountType   `json:"discount_type,omitempty"`
	DiscountAmount         float64               `json:"discount_amount"`
	PaymentMethod          *string               `json:"payment_method,omitempty"`
	PaymentAmount          *float64              `json:"payment_amount,omitempty"`
	PaymentDate            *time.Time            `json:"payment_date,omitempty"`
	ExpiredSeatSelectionAt time.Time             `json:"expired_seat_selection_at"`
	QRCodeImage            string                `json:"qr_code_image,omitempty"`
	CreatedAt              time.Time             `json:"created_at"`
}

func PurchaseToResponse(purchase *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:                     purchase.ID.String(),
		PurchaseCode:           purchase.PurchaseCode,
		UserID:                 purchase.UserID.String(),
		ShowtimeID:             purchase.ShowtimeID.String(),
		NumberTickets:          purchase.NumberTickets,
		ChosenSeats:            purchase.ChosenSeats,
		Status:                 purchase.Status,
		OriginalAmount:         purchase.OriginalAmount,
		DiscountType:           purchase.DiscountType,
		DiscountAmount:         purchase.DiscountAmount,
		PaymentMethod:          purchase.PaymentMethod,
		PaymentAmount:          purchase.PaymentAmount,
		PaymentDate:            purchase.PaymentDate,
		ExpiredSeatSelectionAt: purchase.ExpiredSeatSelectionAt,
		QRCodeImage:            purchase.QRCodeImage,
		CreatedAt:              purchase.CreatedAt,
	}
}

func PurchasesToResponse(purchases []*entity.Purchase) []PurchaseResponse {
	resp := make([]PurchaseResponse, 0, len(purchases))
	for _, purchase := range purchases {
		resp = append(resp, PurchaseToResponse(purchase))
	}
	return resp
}
