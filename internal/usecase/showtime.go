package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"movie-booking/internal/data/entity"
)

// DateLayout is the wire format of show dates.
const DateLayout = "2006-01-02"

var (
	slotLayouts  = []string{"3:04 PM"}
	clockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}
)

// ParseTimeSlot reads a stored 12-hour slot such as "10:00 AM" or
// "1:00 PM" and returns its offset from midnight.
func ParseTimeSlot(slot string) (time.Duration, error) {
	return parseTimeOfDay(slot, slotLayouts)
}

// ParseClock reads a caller supplied current time. Both 24-hour
// ("15:04", "15:04:05") and 12-hour ("3:04 PM") forms are accepted.
func ParseClock(value string) (time.Duration, error) {
	return parseTimeOfDay(value, clockLayouts)
}

func parseTimeOfDay(value string, layouts []string) (time.Duration, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(value), " "))
	for _, layout := range layouts {
		t, err := time.Parse(layout, normalized)
		if err == nil {
			return sinceMidnight(t), nil
		}
	}
	return 0, fmt.Errorf("unrecognised time of day %q", value)
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

type parsedShowtime struct {
	showtime *entity.Showtime
	start    time.Duration
	ok       bool
}

func parseShowtimes(showtimes []*entity.Showtime) []parsedShowtime {
	parsed := make([]parsedShowtime, len(showtimes))
	for i, st := range showtimes {
		start, err := ParseTimeSlot(st.TimeSlot)
		parsed[i] = parsedShowtime{showtime: st, start: start, ok: err == nil}
	}

	// unparseable slots sink to the end, keeping their stored order
	sort.SliceStable(parsed, func(i, j int) bool {
		a, b := parsed[i], parsed[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.start < b.start
	})

	return parsed
}

// SortShowtimes orders showtimes by time of day ascending.
func SortShowtimes(showtimes []*entity.Showtime) []*entity.Showtime {
	parsed := parseShowtimes(showtimes)
	sorted := make([]*entity.Showtime, len(parsed))
	for i, p := range parsed {
		sorted[i] = p.showtime
	}
	return sorted
}

// UpcomingShowtimes sorts showtimes and drops every slot whose screening
// window (start + duration) ended before now. Windows running past midnight
// are never dropped. Unparseable slots are kept and returned separately so
// the caller can report them.
func UpcomingShowtimes(showtimes []*entity.Showtime, now, duration time.Duration) (kept []*entity.Showtime, unparsed []*entity.Showtime) {
	kept = make([]*entity.Showtime, 0, len(showtimes))
	for _, p := range parseShowtimes(showtimes) {
		if !p.ok {
			unparsed = append(unparsed, p.showtime)
			kept = append(kept, p.showtime)
			continue
		}
		if p.start+duration >= now {
			kept = append(kept, p.showtime)
		}
	}
	return kept, unparsed
}

// FormatTimeSlot renders an offset from midnight in the stored slot form,
// "01:00 PM".
func FormatTimeSlot(d time.Duration) string {
	return time.Time{}.Add(d).Format("03:04 PM")
}
