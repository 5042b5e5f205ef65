package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	// FindAll returns rows in id order; callers sort by parsed time.
	FindAll(ctx context.Context) ([]*entity.Showtime, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (time_slot)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query, showtime.TimeSlot).
		Scan(&showtime.ID, &showtime.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("time_slot", showtime.TimeSlot),
		)
		return fmt.Errorf("create showtime %s: %w", showtime.TimeSlot, translate(err))
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `
		SELECT id, time_slot, created_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.TimeSlot,
		&showtime.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("time_slot_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	query := `
		SELECT id, time_slot, created_at
		FROM showtimes
		ORDER BY id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find showtimes", zap.Error(err))
		return nil, fmt.Errorf("find showtimes: %w", err)
	}
	defer rows.Close()

	showtimes := make([]*entity.Showtime, 0)
	for rows.Next() {
		var showtime entity.Showtime
		if err := rows.Scan(&showtime.ID, &showtime.TimeSlot, &showtime.CreatedAt); err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}
