package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/gateway"
	"movie-booking/pkg/utils"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	AvailableSeats(ctx context.Context, req *request.AvailableSeatsRequest) (*response.AvailableSeatsResponse, error)
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	GetBooking(ctx context.Context, bookingID int64) (*response.BookingDetailResponse, error)

	// Payment
	CreatePaymentOrder(ctx context.Context, bookingID int64) (*response.PaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, bookingID int64, req *request.VerifyPaymentRequest) (*response.BookingDetailResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	chart   SeatChart
	gateway gateway.Gateway
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, gw gateway.Gateway, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		chart: SeatChart{
			Rows:    config.Booking.SeatRows,
			Columns: config.Booking.SeatColumns,
		},
		gateway: gw,
		log:     log.With(zap.String("service", "booking")),
	}
}

// AvailableSeats is the seat chart minus seats held by successfully paid
// bookings for the screening.
func (s *bookingService) AvailableSeats(ctx context.Context, req *request.AvailableSeatsRequest) (*response.AvailableSeatsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("Validation failed", errs)
	}

	showDate, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, validationError("Validation failed", map[string]string{"date": "Use YYYY-MM-DD"})
	}

	taken, err := s.repo.BookingSeat.FindConfirmedSeatNos(ctx, req.MovieID, showDate, req.TimeSlotID)
	if err != nil {
		return nil, internalError("load booked seats", err)
	}

	return &response.AvailableSeatsResponse{Available: s.chart.Available(taken)}, nil
}

// CreateBooking stores a pending booking and its seats in one transaction.
// Seats are only claimed for good when the payment is verified.
func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	seats := lo.Map(req.SeatList(), func(seat string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(seat))
	})

	fields := utils.ValidateStruct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	for field, msg := range s.chart.Validate(seats) {
		fields[field] = msg
	}
	if req.TotalAmount == nil {
		fields["total_amount"] = "This field is required"
	} else if req.TotalAmount.IsNegative() {
		fields["total_amount"] = "Minimum value is 0"
	} else if req.TotalAmount.Round(2).GreaterThan(MaxAmount) {
		fields["total_amount"] = "Maximum value is " + MaxAmount.StringFixed(2)
	}
	if len(fields) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", fields))
		return nil, validationError("Validation failed", fields)
	}

	showDate, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, validationError("Validation failed", map[string]string{"date": "Use YYYY-MM-DD"})
	}

	booking := &entity.Booking{
		Reference:     utils.GenerateUUID(),
		UserID:        req.UserID,
		MovieID:       req.MovieID,
		ShowDate:      showDate,
		TimeSlotID:    req.TimeSlotID,
		TotalAmount:   req.TotalAmount.Round(2),
		PaymentStatus: entity.PaymentStatusPending,
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, booking); err != nil {
			return err
		}

		taken, err := s.repo.BookingSeat.FindConfirmedSeatNos(ctx, booking.MovieID, booking.ShowDate, booking.TimeSlotID)
		if err != nil {
			return fmt.Errorf("load booked seats: %w", err)
		}
		if clash := lo.Intersect(taken, seats); len(clash) > 0 {
			return conflictError("Seats already booked: "+strings.Join(clash, ", "), nil)
		}

		if err := s.repo.Booking.Create(ctx, booking); err != nil {
			return err
		}

		return s.repo.BookingSeat.CreateBatch(ctx, booking, seats)
	})
	if err != nil {
		s.log.Warn("Create booking failed",
			zap.Error(err),
			zap.Int64("user_id", req.UserID),
			zap.Int64("movie_id", req.MovieID),
			zap.Strings("seats", seats),
		)
		return nil, storageError("create booking", err)
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference.String()),
		zap.Int64("user_id", booking.UserID),
		zap.Strings("seats", seats),
		zap.String("total_amount", booking.TotalAmount.StringFixed(2)),
	)

	return &response.CreateBookingResponse{
		Status:    utils.StatusSuccess,
		BookingID: booking.ID,
	}, nil
}

func (s *bookingService) checkReferences(ctx context.Context, booking *entity.Booking) error {
	missing := make(map[string]string)

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		missing["user_id"] = fmt.Sprintf("User %d does not exist", booking.UserID)
	}

	movie, err := s.repo.Movie.FindByID(ctx, booking.MovieID)
	if err != nil {
		return err
	}
	if movie == nil {
		missing["movie_id"] = fmt.Sprintf("Movie %d does not exist", booking.MovieID)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, booking.TimeSlotID)
	if err != nil {
		return err
	}
	if showtime == nil {
		missing["time_slot_id"] = fmt.Sprintf("Showtime %d does not exist", booking.TimeSlotID)
	}

	if len(missing) > 0 {
		return referenceError("Referenced records do not exist", missing)
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID int64) (*response.BookingDetailResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.BookingSeat.FindSeatNosByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("load booking seats", err)
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("load booking payments", err)
	}

	return &response.BookingDetailResponse{
		Status:  utils.StatusSuccess,
		Booking: response.BookingToResponse(booking, seats, payments),
	}, nil
}

// CreatePaymentOrder opens a gateway order for a committed pending booking.
// A gateway failure marks the booking failed rather than leaving it pending
// with no remote order.
func (s *bookingService) CreatePaymentOrder(ctx context.Context, bookingID int64) (*response.PaymentOrderResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus != entity.PaymentStatusPending {
		return nil, conflictError(fmt.Sprintf("Booking %d is already %s", booking.ID, booking.PaymentStatus), nil)
	}

	amount := ToMinorUnits(booking.TotalAmount)
	if amount <= 0 {
		return nil, validationError("Booking has nothing to pay", map[string]string{
			"total_amount": "Must be greater than 0",
		})
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   amount,
		Currency: s.gateway.Currency(),
		Receipt:  utils.GenerateBookingReceipt(booking.Reference),
	})
	if err != nil {
		s.log.Error("Gateway order failed; marking booking failed",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
		s.markFailed(ctx, booking, nil, nil)
		return nil, externalError("Payment gateway could not create an order", err)
	}

	payment := &entity.Payment{
		BookingID:      booking.ID,
		GatewayOrderID: &order.ID,
		Amount:         booking.TotalAmount,
		Currency:       s.gateway.Currency(),
		Status:         entity.LedgerStatusCreated,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Gateway order created but not recorded",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
			zap.String("gateway_order_id", order.ID),
		)
		return nil, internalError("record payment order", err)
	}

	s.log.Info("Payment order created",
		zap.Int64("booking_id", booking.ID),
		zap.String("gateway_order_id", order.ID),
		zap.Int64("amount", amount),
	)

	return &response.PaymentOrderResponse{
		Status:   utils.StatusSuccess,
		OrderID:  order.ID,
		Amount:   amount,
		Currency: s.gateway.Currency(),
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifyPayment checks the checkout signature and confirms the booking.
// Confirmation claims the seats; if another paid booking got one of them
// first, the unique index rejects it and this booking is marked failed.
func (s *bookingService) VerifyPayment(ctx context.Context, bookingID int64, req *request.VerifyPaymentRequest) (*response.BookingDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("Validation failed", errs)
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus != entity.PaymentStatusPending {
		return nil, conflictError(fmt.Sprintf("Booking %d is already %s", booking.ID, booking.PaymentStatus), nil)
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, internalError("load booking payments", err)
	}
	known := lo.ContainsBy(payments, func(p *entity.Payment) bool {
		return p.Status == entity.LedgerStatusCreated && p.GatewayOrderID != nil && *p.GatewayOrderID == req.RazorpayOrderID
	})
	if !known {
		return nil, validationError("Validation failed", map[string]string{
			"razorpay_order_id": "Order was not issued for this booking",
		})
	}

	if err := s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		if !errors.Is(err, gateway.ErrInvalidSignature) {
			return nil, externalError("Payment gateway is not available", err)
		}

		s.log.Warn("Payment signature mismatch",
			zap.Int64("booking_id", booking.ID),
			zap.String("gateway_order_id", req.RazorpayOrderID),
		)
		s.markFailed(ctx, booking, &req.RazorpayOrderID, &req.RazorpayPaymentID)
		return nil, validationError("Payment signature is invalid", map[string]string{
			"razorpay_signature": "Signature does not match",
		})
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.repo.Booking.FindByIDForUpdate(ctx, booking.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return notFoundError(fmt.Sprintf("Booking %d not found", booking.ID))
		}
		if locked.PaymentStatus != entity.PaymentStatusPending {
			return conflictError(fmt.Sprintf("Booking %d is already %s", locked.ID, locked.PaymentStatus), nil)
		}

		if err := s.repo.BookingSeat.ConfirmByBookingID(ctx, booking.ID); err != nil {
			return err
		}
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.PaymentStatusPending, entity.PaymentStatusSuccess); err != nil {
			return err
		}

		return s.repo.Payment.Create(ctx, &entity.Payment{
			BookingID:        booking.ID,
			GatewayOrderID:   &req.RazorpayOrderID,
			GatewayPaymentID: &req.RazorpayPaymentID,
			Amount:           booking.TotalAmount,
			Currency:         s.gateway.Currency(),
			Status:           entity.LedgerStatusSuccess,
		})
	})
	if errors.Is(err, repository.ErrDuplicate) {
		s.log.Warn("Seat taken by another paid booking; marking booking failed",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
		s.markFailed(ctx, booking, &req.RazorpayOrderID, &req.RazorpayPaymentID)
		return nil, conflictError("One or more seats were taken by another booking", err)
	}
	if err != nil {
		return nil, storageError("confirm booking", err)
	}

	s.log.Info("Booking paid",
		zap.Int64("booking_id", booking.ID),
		zap.String("gateway_order_id", req.RazorpayOrderID),
		zap.String("gateway_payment_id", req.RazorpayPaymentID),
	)

	return s.GetBooking(ctx, booking.ID)
}

func (s *bookingService) findBooking(ctx context.Context, bookingID int64) (*entity.Booking, error) {
	if bookingID <= 0 {
		return nil, validationError("Validation failed", map[string]string{"id": "Must be greater than 0"})
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, internalError("load booking", err)
	}
	if booking == nil {
		return nil, notFoundError(fmt.Sprintf("Booking %d not found", bookingID))
	}

	return booking, nil
}

// markFailed appends a failed ledger row and fails the booking, unless a
// concurrent request already moved it out of pending. It runs detached from
// the request context so a cancelled client cannot leave the booking pending.
func (s *bookingService) markFailed(ctx context.Context, booking *entity.Booking, orderID, paymentID *string) {
	ctx = context.WithoutCancel(ctx)

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := s.repo.Booking.FindByIDForUpdate(ctx, booking.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.PaymentStatus != entity.PaymentStatusPending {
			s.log.Warn("Booking left as is; no longer pending",
				zap.Int64("booking_id", booking.ID),
			)
			return nil
		}

		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.PaymentStatusPending, entity.PaymentStatusFailed); err != nil {
			return err
		}
		return s.repo.Payment.Create(ctx, &entity.Payment{
			BookingID:        booking.ID,
			GatewayOrderID:   orderID,
			GatewayPaymentID: paymentID,
			Amount:           booking.TotalAmount,
			Currency:         s.gateway.Currency(),
			Status:           entity.LedgerStatusFailed,
		})
	})
	if err != nil {
		s.log.Error("Failed to mark booking failed",
			zap.Error(err),
			zap.Int64("booking_id", booking.ID),
		)
	}
}

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest value a NUMERIC(10,2) money column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

// ToMinorUnits converts a rupee amount to paise, rounding half away from
// zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
