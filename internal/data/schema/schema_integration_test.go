package schema

import (
	"context"
	"os"
	"sync"
	"testing"

	"movie-booking/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// openTestDB connects to TEST_DATABASE_URL. The database is reset, so point
// it at a throwaway instance.
func openTestDB(t *testing.T) database.PgxIface {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(ctx, `
		DROP TABLE IF EXISTS payments, booking_seats, bookings, orders,
			showtimes, movies, users, schema_migrations CASCADE
	`)
	require.NoError(t, err)

	return db
}

func countRows(t *testing.T, db database.PgxIface, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestMigrateSeedReseed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	m := NewManager(db, zap.NewNop())

	require.NoError(t, m.Migrate(ctx))
	require.NoError(t, m.Migrate(ctx), "second run is a no-op")
	assert.Equal(t, 2, countRows(t, db, "schema_migrations"))

	first, err := m.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Movies: 2, Showtimes: 4}, first)

	second, err := m.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, second)
	assert.Equal(t, 2, countRows(t, db, "movies"))
	assert.Equal(t, 4, countRows(t, db, "showtimes"))

	require.NoError(t, m.Reseed(ctx))
	require.NoError(t, m.Reseed(ctx))
	assert.Equal(t, 2, countRows(t, db, "movies"))
	assert.Equal(t, 4, countRows(t, db, "showtimes"))

	var firstID int
	var firstSlot string
	require.NoError(t, db.QueryRow(ctx, `SELECT id, time_slot FROM showtimes ORDER BY id LIMIT 1`).Scan(&firstID, &firstSlot))
	assert.Equal(t, 1, firstID, "ids restart after reseed")
	assert.Equal(t, "10:00 AM", firstSlot)
}

func TestConcurrentMigrate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = NewManager(db, zap.NewNop()).Migrate(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, countRows(t, db, "schema_migrations"))
}

func TestConfirmedSeatIsUniquePerScreening(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	m := NewManager(db, zap.NewNop())

	require.NoError(t, m.Migrate(ctx))
	_, err := m.Seed(ctx)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO users (name, email) VALUES ('A', 'a@example.com')`)
	require.NoError(t, err)

	insertBooking := func(ref string) int {
		var id int
		err := db.QueryRow(ctx, `
			INSERT INTO bookings (reference, user_id, movie_id, show_date, time_slot_id, total_amount)
			VALUES ($1, 1, 1, '2026-03-14', 1, 100) RETURNING id
		`, ref).Scan(&id)
		require.NoError(t, err)

		_, err = db.Exec(ctx, `
			INSERT INTO booking_seats (booking_id, movie_id, show_date, time_slot_id, seat_no)
			VALUES ($1, 1, '2026-03-14', 1, 'A1')
		`, id)
		require.NoError(t, err, "pending seats may overlap")
		return id
	}

	first := insertBooking("00000000-0000-0000-0000-000000000001")
	second := insertBooking("00000000-0000-0000-0000-000000000002")

	_, err = db.Exec(ctx, `UPDATE booking_seats SET confirmed = TRUE WHERE booking_id = $1`, first)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `UPDATE booking_seats SET confirmed = TRUE WHERE booking_id = $1`, second)
	assert.Error(t, err)
}
