package entity

// Showtime is a named slot ("10:00 AM") shared by every movie and screen.
type Showtime struct {
	BaseSimple
	TimeSlot string `db:"time_slot"`
}
