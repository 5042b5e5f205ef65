package request

type AddMovieRequest struct {
	ScreenNo   int     `json:"screen_no" validate:"required,gt=0"`
	MovieName  string  `json:"movie_name" validate:"required,min=1,max=100"`
	PosterURL  *string `json:"poster_url,omitempty" validate:"omitempty,max=255"`
	TrailerURL *string `json:"trailer_url,omitempty" validate:"omitempty,max=255"`
}

type AddShowtimeRequest struct {
	TimeSlot string `json:"time_slot" validate:"required,max=20"`
}

// ShowtimeQuery filters the showtime list. Both fields are optional: an
// empty date returns every slot.
type ShowtimeQuery struct {
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	CurrentTime string `json:"current_time" validate:"omitempty,max=20"`
}
