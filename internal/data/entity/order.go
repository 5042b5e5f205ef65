package entity

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusCreated OrderStatus = "created"
	OrderStatusFailed  OrderStatus = "failed"
)

type Order struct {
	Base
	UserID         int64           `db:"user_id"`
	OrderItem      string          `db:"order_item"`
	Quantity       int             `db:"quantity"`
	Amount         decimal.Decimal `db:"amount"`
	Status         OrderStatus     `db:"status"`
	GatewayOrderID *string         `db:"gateway_order_id"`
}
