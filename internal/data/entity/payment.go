package entity

import (
	"github.com/shopspring/decimal"
)

type LedgerStatus string

const (
	LedgerStatusCreated LedgerStatus = "created"
	LedgerStatusSuccess LedgerStatus = "success"
	LedgerStatusFailed  LedgerStatus = "failed"
)

// Payment is one append-only ledger row; a status change is a new row.
type Payment struct {
	BaseSimple
	BookingID        int64           `db:"booking_id"`
	GatewayOrderID   *string         `db:"gateway_order_id"`
	GatewayPaymentID *string         `db:"gateway_payment_id"`
	Amount           decimal.Decimal `db:"amount"`
	Currency         string          `db:"currency"`
	Status           LedgerStatus    `db:"status"`
}
