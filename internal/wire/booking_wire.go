package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Post("/book", bookingHandler.CreateBooking)
	r.Post("/available-seats", bookingHandler.AvailableSeats)

	r.Route("/bookings/{id}", func(r chi.Router) {
		r.Get("/", bookingHandler.GetBooking)
		r.Post("/payment-order", bookingHandler.CreatePaymentOrder)
		r.Post("/payment-verify", bookingHandler.VerifyPayment)
	})
}
