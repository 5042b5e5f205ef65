package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Booking struct {
	Base
	Reference     uuid.UUID       `db:"reference"`
	UserID        int64           `db:"user_id"`
	MovieID       int64           `db:"movie_id"`
	ShowDate      time.Time       `db:"show_date"`
	TimeSlotID    int64           `db:"time_slot_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
}
