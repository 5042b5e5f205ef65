package schema

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

// SeedMovies is the fixed starter catalog.
var SeedMovies = []entity.Movie{
	{ScreenNo: 1, MovieName: "Mask", PosterURL: strPtr("poster1.jpg"), TrailerURL: strPtr("trailer1")},
	{ScreenNo: 2, MovieName: "Movie Two", PosterURL: strPtr("poster2.jpg"), TrailerURL: strPtr("trailer2")},
}

// SeedShowtimes are the daily slots shared by every screen.
var SeedShowtimes = []string{"10:00 AM", "01:00 PM", "04:00 PM", "10:00 PM"}

// SeedResult reports how many rows a seeding run inserted.
type SeedResult struct {
	Movies    int
	Showtimes int
}

// Seed inserts the starter catalog into empty tables only. Tables that
// already hold rows are left alone, so existing bookings keep their
// references.
func (m *Manager) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := database.Conn(ctx, m.db)

		// serialise concurrent seeders the same way as migrations
		if _, err := conn.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}

		var hasMovies, hasShowtimes bool
		err := conn.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM movies), EXISTS (SELECT 1 FROM showtimes)
		`).Scan(&hasMovies, &hasShowtimes)
		if err != nil {
			return fmt.Errorf("check seed tables: %w", err)
		}

		if !hasMovies {
			if err := m.insertMovies(ctx); err != nil {
				return err
			}
			result.Movies = len(SeedMovies)
		}

		if !hasShowtimes {
			if err := m.insertShowtimes(ctx); err != nil {
				return err
			}
			result.Showtimes = len(SeedShowtimes)
		}

		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	m.log.Info("Seed completed",
		zap.Int("movies_inserted", result.Movies),
		zap.Int("showtimes_inserted", result.Showtimes),
	)

	return result, nil
}

// Reseed truncates movies and showtimes, restarting their ids, and inserts
// the starter catalog again. The truncate cascades: every booking, seat and
// payment that referenced the old rows is deleted with them.
func (m *Manager) Reseed(ctx context.Context) error {
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := database.Conn(ctx, m.db)

		if _, err := conn.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockKey); err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}

		if _, err := conn.Exec(ctx, `TRUNCATE movies, showtimes RESTART IDENTITY CASCADE`); err != nil {
			return fmt.Errorf("truncate catalog: %w", err)
		}

		if err := m.insertMovies(ctx); err != nil {
			return err
		}
		return m.insertShowtimes(ctx)
	})
	if err != nil {
		return err
	}

	m.log.Warn("Catalog reseeded; dependent bookings were removed",
		zap.Int("movies", len(SeedMovies)),
		zap.Int("showtimes", len(SeedShowtimes)),
	)

	return nil
}

func (m *Manager) insertMovies(ctx context.Context) error {
	conn := database.Conn(ctx, m.db)

	for _, movie := range SeedMovies {
		_, err := conn.Exec(ctx, `
			INSERT INTO movies (screen_no, movie_name, poster_url, trailer_url)
			VALUES ($1, $2, $3, $4)
		`, movie.ScreenNo, movie.MovieName, movie.PosterURL, movie.TrailerURL)
		if err != nil {
			return fmt.Errorf("seed movie %s: %w", movie.MovieName, err)
		}
	}

	return nil
}

func (m *Manager) insertShowtimes(ctx context.Context) error {
	conn := database.Conn(ctx, m.db)

	for _, slot := range SeedShowtimes {
		if _, err := conn.Exec(ctx, `INSERT INTO showtimes (time_slot) VALUES ($1)`, slot); err != nil {
			return fmt.Errorf("seed showtime %s: %w", slot, err)
		}
	}

	return nil
}
