package request

import "github.com/shopspring/decimal"

// CreateBookingRequest accepts either a seats array or a single seat_no.
type CreateBookingRequest struct {
	UserID      int64            `json:"user_id" validate:"required,gt=0"`
	MovieID     int64            `json:"movie_id" validate:"required,gt=0"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlotID  int64            `json:"time_slot_id" validate:"required,gt=0"`
	Seats       []string         `json:"seats,omitempty"`
	SeatNo      string           `json:"seat_no,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}

// SeatList merges the two accepted seat shapes.
func (r *CreateBookingRequest) SeatList() []string {
	if len(r.Seats) > 0 {
		return r.Seats
	}
	if r.SeatNo != "" {
		return []string{r.SeatNo}
	}
	return nil
}

type AvailableSeatsRequest struct {
	MovieID    int64  `json:"movie_id" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlotID int64  `json:"time_slot_id" validate:"required,gt=0"`
}

// VerifyPaymentRequest carries the fields checkout posts back after a
// successful payment.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required,max=64"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required,max=64"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required,hexadecimal"`
}
