package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultChart = SeatChart{Rows: 5, Columns: 6}

func TestSeatChartLabels(t *testing.T) {
	labels := defaultChart.Labels()

	assert.Len(t, labels, 30)
	assert.Equal(t, 30, defaultChart.Size())
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5", "A6", "B1"}, labels[:7])
	assert.Equal(t, "E6", labels[len(labels)-1])
}

func TestSeatChartContains(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"A1", true},
		{"C4", true},
		{"E6", true},
		{"F1", false},
		{"A7", false},
		{"A0", false},
		{"A01", false},
		{"a1", false},
		{"A", false},
		{"", false},
		{"AX", false},
		{"A+1", false},
		{"A-1", false},
		{"A 1", false},
		{"A1 ", false},
		{"A١", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultChart.Contains(tt.label))
		})
	}
}

func TestSeatChartAvailable(t *testing.T) {
	t.Run("no bookings returns the universe", func(t *testing.T) {
		assert.Equal(t, defaultChart.Labels(), defaultChart.Available(nil))
	})

	t.Run("taken seats are removed in universe order", func(t *testing.T) {
		available := defaultChart.Available([]string{"B2", "A1", "A2"})

		assert.Len(t, available, 27)
		assert.NotContains(t, available, "A1")
		assert.NotContains(t, available, "A2")
		assert.NotContains(t, available, "B2")
		assert.Equal(t, "A3", available[0])
	})

	t.Run("result is a subset disjoint from taken", func(t *testing.T) {
		taken := []string{"C4", "C5", "Z9", "E6"}
		available := defaultChart.Available(taken)

		universe := defaultChart.Labels()
		for _, seat := range available {
			assert.Contains(t, universe, seat)
			assert.NotContains(t, taken, seat)
		}
		assert.Len(t, available, 27)
	})
}

func TestSeatChartValidate(t *testing.T) {
	assert.Nil(t, defaultChart.Validate([]string{"A1", "A2"}))
	assert.Contains(t, defaultChart.Validate(nil), "seats")
	assert.Contains(t, defaultChart.Validate([]string{"A1", "Z9"})["seats"], "Z9")
	assert.Contains(t, defaultChart.Validate([]string{"A1", "B2", "A1"})["seats"], "more than once")
}

func TestSeatChartCustomSize(t *testing.T) {
	chart := SeatChart{Rows: 2, Columns: 10}

	assert.True(t, chart.Contains("B10"))
	assert.False(t, chart.Contains("C1"))
	assert.Len(t, chart.Labels(), 20)
}

func TestSeatChartValidateRejectsSignedColumns(t *testing.T) {
	errs := defaultChart.Validate([]string{"A+1"})

	assert.Contains(t, errs["seats"], "A+1")
}
