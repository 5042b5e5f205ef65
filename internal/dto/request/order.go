package request

import "github.com/shopspring/decimal"

type SaveOrderRequest struct {
	Name      string           `json:"name" validate:"required,min=1,max=100"`
	Email     string           `json:"email" validate:"required,email,max=100"`
	Phone     *string          `json:"phone,omitempty" validate:"omitempty,max=20"`
	OrderItem string           `json:"order_item" validate:"required,min=1,max=100"`
	Quantity  int              `json:"quantity" validate:"required,gt=0,max=2147483647"`
	Amount    *decimal.Decimal `json:"amount"`
}
