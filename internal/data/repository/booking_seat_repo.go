package repository

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

type BookingSeatRepository interface {
	// CreateBatch inserts one row per seat label for booking.
	CreateBatch(ctx context.Context, booking *entity.Booking, seatNos []string) error
	FindSeatNosByBookingID(ctx context.Context, bookingID int64) ([]string, error)

	// Business queries
	FindConfirmedSeatNos(ctx context.Context, movieID int64, showDate time.Time, timeSlotID int64) ([]string, error)
	// ConfirmByBookingID marks the booking's seats confirmed. It fails with
	// ErrDuplicate when another confirmed booking holds one of the seats.
	ConfirmByBookingID(ctx context.Context, bookingID int64) error
}

type bookingSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingSeatRepository(db database.PgxIface, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

func (r *bookingSeatRepository) CreateBatch(ctx context.Context, booking *entity.Booking, seatNos []string) error {
	if len(seatNos) == 0 {
		return nil
	}

	query := `
		INSERT INTO booking_seats (booking_id, movie_id, show_date, time_slot_id, seat_no)
		SELECT $1, $2, $3, $4, seat_no
		FROM unnest($5::text[]) WITH ORDINALITY AS s(seat_no, n)
		ORDER BY n
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.MovieID,
		booking.ShowDate,
		booking.TimeSlotID,
		seatNos,
	)
	if err != nil {
		r.log.Error("Failed to create booking seats",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
			zap.Strings("seats", seatNos),
		)
		return fmt.Errorf("create booking seats for booking %d: %w", booking.ID, translate(err))
	}

	if result.RowsAffected() != int64(len(seatNos)) {
		return fmt.Errorf("create booking seats for booking %d: inserted %d of %d rows",
			booking.ID, result.RowsAffected(), len(seatNos))
	}

	return nil
}

func (r *bookingSeatRepository) FindSeatNosByBookingID(ctx context.Context, bookingID int64) ([]string, error) {
	query := `
		SELECT seat_no
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY id
	`

	return r.querySeatNos(ctx, query, bookingID)
}

func (r *bookingSeatRepository) FindConfirmedSeatNos(ctx context.Context, movieID int64, showDate time.Time, timeSlotID int64) ([]string, error) {
	query := `
		SELECT bs.seat_no
		FROM booking_seats bs
		INNER JOIN bookings b ON bs.booking_id = b.id
		WHERE b.movie_id = $1 AND b.show_date = $2 AND b.time_slot_id = $3
		  AND b.payment_status = 'success'
	`

	return r.querySeatNos(ctx, query, movieID, showDate, timeSlotID)
}

func (r *bookingSeatRepository) ConfirmByBookingID(ctx context.Context, bookingID int64) error {
	query := `UPDATE booking_seats SET confirmed = TRUE WHERE booking_id = $1`

	if _, err := database.Conn(ctx, r.db).Exec(ctx, query, bookingID); err != nil {
		r.log.Warn("Failed to confirm booking seats",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return fmt.Errorf("confirm seats for booking %d: %w", bookingID, translate(err))
	}

	return nil
}

func (r *bookingSeatRepository) querySeatNos(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query seat numbers", zap.Error(err))
		return nil, fmt.Errorf("query seat numbers: %w", err)
	}
	defer rows.Close()

	seatNos := make([]string, 0)
	for rows.Next() {
		var seatNo string
		if err := rows.Scan(&seatNo); err != nil {
			r.log.Error("Failed to scan seat number row", zap.Error(err))
			return nil, fmt.Errorf("scan seat number row: %w", err)
		}
		seatNos = append(seatNos, seatNo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seat number rows: %w", err)
	}

	return seatNos, nil
}
