package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetMovies handles GET /movies
func (h *CatalogHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		handleServiceError(w, r, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, movies)
}

// GetShowtimes handles GET /showtimes?date=YYYY-MM-DD&current_time=HH:MM
func (h *CatalogHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.listShowtimes(w, r, &request.ShowtimeQuery{
		Date:        query.Get("date"),
		CurrentTime: query.Get("current_time"),
	})
}

// PostShowtimes handles POST /showtimes with the filter in the body
func (h *CatalogHandler) PostShowtimes(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeQuery
	if !decodeJSON(w, r, &req, true) {
		return
	}
	h.listShowtimes(w, r, &req)
}

func (h *CatalogHandler) listShowtimes(w http.ResponseWriter, r *http.Request, req *request.ShowtimeQuery) {
	showtimes, err := h.service.ListShowtimes(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, showtimes)
}

// AddMovie handles POST /add-movie
func (h *CatalogHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req request.AddMovieRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.AddMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "add movie")
		return
	}

	utils.ResponseCreated(w, resp)
}

// AddShowtime handles POST /add-showtime
func (h *CatalogHandler) AddShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.AddShowtimeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.AddShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "add showtime")
		return
	}

	utils.ResponseCreated(w, resp)
}
