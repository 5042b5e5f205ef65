package response

// SaveOrderResponse keeps the camelCase keys existing checkout pages read.
type SaveOrderResponse struct {
	Status    string `json:"status"`
	OrderID   string `json:"orderId"`
	DBOrderID int64  `json:"dbOrderId"`
}
