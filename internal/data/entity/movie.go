package entity

type Movie struct {
	BaseSimple
	ScreenNo   int     `db:"screen_no"`
	MovieName  string  `db:"movie_name"`
	PosterURL  *string `db:"poster_url"`
	TrailerURL *string `db:"trailer_url"`
}
