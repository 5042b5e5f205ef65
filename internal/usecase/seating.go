package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// SeatChart is the fixed seat universe of a screen: rows lettered from A,
// columns numbered from 1. Every screen shares the same chart.
type SeatChart struct {
	Rows    int
	Columns int
}

// Labels returns the universe in canonical order: A1..A6, B1..B6, ...
func (c SeatChart) Labels() []string {
	labels := make([]string, 0, c.Rows*c.Columns)
	for row := 0; row < c.Rows; row++ {
		for col := 1; col <= c.Columns; col++ {
			labels = append(labels, string(rune('A'+row))+strconv.Itoa(col))
		}
	}
	return labels
}

func (c SeatChart) Size() int {
	return c.Rows * c.Columns
}

// Contains reports whether label names a seat in the chart. Labels are
// case-sensitive, and the column is plain ASCII digits with no sign, space or
// leading zero.
func (c SeatChart) Contains(label string) bool {
	if len(label) < 2 {
		return false
	}

	row := int(label[0]) - 'A'
	if row < 0 || row >= c.Rows {
		return false
	}

	digits := label[1:]
	if digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	col, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}

	return col >= 1 && col <= c.Columns
}

// Available is the universe minus taken, in universe order. Labels in taken
// that are outside the chart are ignored.
func (c SeatChart) Available(taken []string) []string {
	return lo.Without(c.Labels(), taken...)
}

// Validate checks a requested seat list: at least one seat, every label in
// the chart and no label twice. Field errors are keyed by "seats".
func (c SeatChart) Validate(seats []string) map[string]string {
	if len(seats) == 0 {
		return map[string]string{"seats": "At least one seat is required"}
	}

	invalid := lo.Filter(seats, func(seat string, _ int) bool {
		return !c.Contains(seat)
	})
	if len(invalid) > 0 {
		return map[string]string{
			"seats": fmt.Sprintf("Unknown seats %s; valid seats are A1 to %s",
				strings.Join(invalid, ", "), c.lastLabel()),
		}
	}

	if dups := lo.FindDuplicates(seats); len(dups) > 0 {
		return map[string]string{
			"seats": fmt.Sprintf("Seats requested more than once: %s", strings.Join(dups, ", ")),
		}
	}

	return nil
}

func (c SeatChart) lastLabel() string {
	return string(rune('A'+c.Rows-1)) + strconv.Itoa(c.Columns)
}
