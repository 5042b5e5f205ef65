package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalogFixture(t *testing.T, now time.Time) (*catalogService, *memStore) {
	t.Helper()

	store := newMemStore()
	for _, slot := range []string{"10:00 PM", "10:00 AM", "04:00 PM", "01:00 PM"} {
		store.addShowtime(slot)
	}

	svc := NewCatalogService(store.repository(), testConfig(), zap.NewNop()).(*catalogService)
	svc.now = func() time.Time { return now }

	return svc, store
}

func timeSlots(list []response.ShowtimeResponse) []string {
	result := make([]string, len(list))
	for i, st := range list {
		result[i] = st.TimeSlot
	}
	return result
}

func TestListShowtimes(t *testing.T) {
	now := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	svc, _ := newCatalogFixture(t, now)
	ctx := context.Background()

	t.Run("no date returns every slot sorted by time", func(t *testing.T) {
		got, err := svc.ListShowtimes(ctx, &request.ShowtimeQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00 AM", "01:00 PM", "04:00 PM", "10:00 PM"}, timeSlots(got))
	})

	t.Run("another date is not filtered", func(t *testing.T) {
		got, err := svc.ListShowtimes(ctx, &request.ShowtimeQuery{Date: "2026-03-15", CurrentTime: "23:00"})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("today at 11 AM keeps every slot", func(t *testing.T) {
		got, err := svc.ListShowtimes(ctx, &request.ShowtimeQuery{Date: "2026-03-14", CurrentTime: "11:00 AM"})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00 AM", "01:00 PM", "04:00 PM", "10:00 PM"}, timeSlots(got))
	})

	t.Run("today at 9 PM keeps only the late show", func(t *testing.T) {
		got, err := svc.ListShowtimes(ctx, &request.ShowtimeQuery{Date: "2026-03-14", CurrentTime: "09:00 PM"})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00 PM"}, timeSlots(got))
	})

	t.Run("today without a time uses the clock", func(t *testing.T) {
		got, err := svc.ListShowtimes(ctx, &request.ShowtimeQuery{Date: "2026-03-14"})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00 PM"}, timeSlots(got))
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		q := &request.ShowtimeQuery{Date: "2026-03-14", CurrentTime: "14:00"}
		first, err := svc.ListShowtimes(ctx, q)
		require.NoError(t, err)
		second, err := svc.ListShowtimes(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("bad inputs are validation errors", func(t *testing.T) {
		_, err := svc.ListShowtimes(ctx, &request.ShowtimeQuery{Date: "14/03/2026"})
		assert.Equal(t, KindValidation, KindOf(err))

		_, err = svc.ListShowtimes(ctx, &request.ShowtimeQuery{Date: "2026-03-14", CurrentTime: "teatime"})
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestAddMovie(t *testing.T) {
	svc, _ := newCatalogFixture(t, time.Now())
	ctx := context.Background()

	poster := "poster3.jpg"
	got, err := svc.AddMovie(ctx, &request.AddMovieRequest{ScreenNo: 3, MovieName: " Third ", PosterURL: &poster})
	require.NoError(t, err)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "Third", got.Movie.MovieName)
	assert.Equal(t, 3, got.Movie.ScreenNo)
	assert.NotZero(t, got.Movie.ID)

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	_, err = svc.AddMovie(ctx, &request.AddMovieRequest{ScreenNo: 0, MovieName: ""})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Contains(t, svcErr.Fields, "screen_no")
	assert.Contains(t, svcErr.Fields, "movie_name")
}

func TestAddMovieRejectsValuesWiderThanColumns(t *testing.T) {
	svc, store := newCatalogFixture(t, time.Now())

	trailer := "https://example.com/" + strings.Repeat("t", 240)
	_, err := svc.AddMovie(context.Background(), &request.AddMovieRequest{
		ScreenNo:   1,
		MovieName:  strings.Repeat("m", 101),
		TrailerURL: &trailer,
	})

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
	assert.Contains(t, svcErr.Fields, "movie_name")
	assert.Contains(t, svcErr.Fields, "trailer_url")
	assert.Empty(t, store.movies)
}

func TestAddShowtime(t *testing.T) {
	svc, _ := newCatalogFixture(t, time.Now())
	ctx := context.Background()

	got, err := svc.AddShowtime(ctx, &request.AddShowtimeRequest{TimeSlot: "7:30 pm"})
	require.NoError(t, err)
	assert.Equal(t, "07:30 PM", got.Showtime.TimeSlot)

	_, err = svc.AddShowtime(ctx, &request.AddShowtimeRequest{TimeSlot: "1:00 PM"})
	assert.Equal(t, KindConflict, KindOf(err), "01:00 PM is seeded already")

	_, err = svc.AddShowtime(ctx, &request.AddShowtimeRequest{TimeSlot: "19:30"})
	assert.Equal(t, KindValidation, KindOf(err))
}
