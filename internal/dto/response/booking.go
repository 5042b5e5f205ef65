package response

import (
	"time"

	"movie-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CreateBookingResponse struct {
	Status    string `json:"status"`
	BookingID int64  `json:"booking_id"`
}

type AvailableSeatsResponse struct {
	Available []string `json:"available"`
}

type BookingResponse struct {
	ID            int64                `json:"id"`
	Reference     string               `json:"reference"`
	UserID        int64                `json:"user_id"`
	MovieID       int64                `json:"movie_id"`
	Date          string               `json:"date"`
	TimeSlotID    int64                `json:"time_slot_id"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	Seats         []string             `json:"seats"`
	Payments      []PaymentResponse    `json:"payments"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type BookingDetailResponse struct {
	Status  string          `json:"status"`
	Booking BookingResponse `json:"booking"`
}

// PaymentResponse is one ledger row.
type PaymentResponse struct {
	ID               int64               `json:"id"`
	GatewayOrderID   *string             `json:"gateway_order_id"`
	GatewayPaymentID *string             `json:"gateway_payment_id"`
	Amount           decimal.Decimal     `json:"amount"`
	Currency         string              `json:"currency"`
	Status           entity.LedgerStatus `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
}

// PaymentOrderResponse is what the browser needs to open checkout. Amount
// is in the smallest currency unit.
type PaymentOrderResponse struct {
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, seats []string, payments []*entity.Payment) BookingResponse {
	if seats == nil {
		seats = []string{}
	}

	ledger := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		ledger[i] = PaymentToResponse(p)
	}

	return BookingResponse{
		ID:            booking.ID,
		Reference:     booking.Reference.String(),
		UserID:        booking.UserID,
		MovieID:       booking.MovieID,
		Date:          booking.ShowDate.Format("2006-01-02"),
		TimeSlotID:    booking.TimeSlotID,
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: booking.PaymentStatus,
		Seats:         seats,
		Payments:      ledger,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               payment.ID,
		GatewayOrderID:   payment.GatewayOrderID,
		GatewayPaymentID: payment.GatewayPaymentID,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Status:           payment.Status,
		CreatedAt:        payment.CreatedAt,
	}
}
