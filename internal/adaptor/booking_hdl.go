package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /book
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, resp)
}

// AvailableSeats handles POST /available-seats
func (h *BookingHandler) AvailableSeats(w http.ResponseWriter, r *http.Request) {
	var req request.AvailableSeatsRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.AvailableSeats(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "available seats")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// GetBooking handles GET /bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// CreatePaymentOrder handles POST /bookings/{id}/payment-order
func (h *BookingHandler) CreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.CreatePaymentOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.log, err, "create payment order")
		return
	}

	utils.ResponseCreated(w, resp)
}

// VerifyPayment handles POST /bookings/{id}/payment-verify
func (h *BookingHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.VerifyPaymentRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.VerifyPayment(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, resp)
}
