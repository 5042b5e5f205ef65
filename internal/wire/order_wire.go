package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireOrder keeps the legacy checkout path used by the standalone order page.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler) {
	r.Post("/api/saveOrder", orderHandler.SaveOrder)
}
