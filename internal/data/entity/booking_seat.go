package entity

import "time"

// BookingSeat carries its booking's (movie, date, slot) tuple so confirmed
// seats can be kept unique per screening by an index.
type BookingSeat struct {
	BaseSimple
	BookingID  int64     `db:"booking_id"`
	MovieID    int64     `db:"movie_id"`
	ShowDate   time.Time `db:"show_date"`
	TimeSlotID int64     `db:"time_slot_id"`
	SeatNo     string    `db:"seat_no"`
	Confirmed  bool      `db:"confirmed"`
}
