package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type MovieResponse struct {
	ID         int64     `json:"id"`
	ScreenNo   int       `json:"screen_no"`
	MovieName  string    `json:"movie_name"`
	PosterURL  *string   `json:"poster_url"`
	TrailerURL *string   `json:"trailer_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type AddMovieResponse struct {
	Status string        `json:"status"`
	Movie  MovieResponse `json:"movie"`
}

type ShowtimeResponse struct {
	ID        int64     `json:"id"`
	TimeSlot  string    `json:"time_slot"`
	CreatedAt time.Time `json:"created_at"`
}

type AddShowtimeResponse struct {
	Status   string           `json:"status"`
	Showtime ShowtimeResponse `json:"showtime"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:         movie.ID,
		ScreenNo:   movie.ScreenNo,
		MovieName:  movie.MovieName,
		PosterURL:  movie.PosterURL,
		TrailerURL: movie.TrailerURL,
		CreatedAt:  movie.CreatedAt,
	}
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID,
		TimeSlot:  showtime.TimeSlot,
		CreatedAt: showtime.CreatedAt,
	}
}
