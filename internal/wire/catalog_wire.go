package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/movies", catalogHandler.GetMovies)

	// showtimes accept the filter as query params or as a JSON body
	r.Get("/showtimes", catalogHandler.GetShowtimes)
	r.Post("/showtimes", catalogHandler.PostShowtimes)

	r.Post("/add-movie", catalogHandler.AddMovie)
	r.Post("/add-showtime", catalogHandler.AddShowtime)
}
