package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// SaveOrder handles POST /api/saveOrder
func (h *OrderHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	var req request.SaveOrderRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "save order")
		return
	}

	utils.ResponseSuccess(w, resp)
}
