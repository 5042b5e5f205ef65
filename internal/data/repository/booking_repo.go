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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error)
	// UpdateStatus moves the booking from one status to another and fails
	// with ErrStatusChanged when it is no longer in from.
	UpdateStatus(ctx context.Context, bookingID int64, from, to entity.PaymentStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, user_id, movie_id, show_date, time_slot_id,
		       total_amount, payment_status, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (reference, user_id, movie_id, show_date, time_slot_id, total_amount, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		booking.Reference,
		booking.UserID,
		booking.MovieID,
		booking.ShowDate,
		booking.TimeSlotID,
		booking.TotalAmount,
		booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference.String()),
			zap.Int64("user_id", booking.UserID),
			zap.Int64("movie_id", booking.MovieID),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference.String(), translate(err))
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id int64) (*entity.Booking, error) {
	var booking entity.Booking
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.MovieID,
		&booking.ShowDate,
		&booking.TimeSlotID,
		&booking.TotalAmount,
		&booking.PaymentStatus,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID int64, from, to entity.PaymentStatus) error {
	query := `
		UPDATE bookings SET payment_status = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status = $2
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, bookingID, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("update booking %d status to %s: %w", bookingID, to, translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %d is not %s: %w", bookingID, from, ErrStatusChanged)
	}

	return nil
}
