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

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	// UpdateStatus moves a pending-side order from one status to another and
	// fails with ErrStatusChanged when it is no longer in from.
	UpdateStatus(ctx context.Context, orderID int64, from, to entity.OrderStatus, gatewayOrderID *string) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (user_id, order_item, quantity, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		order.UserID,
		order.OrderItem,
		order.Quantity,
		order.Amount,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.Int64("user_id", order.UserID),
			zap.String("order_item", order.OrderItem),
		)
		return fmt.Errorf("create order for user %d: %w", order.UserID, translate(err))
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT id, user_id, order_item, quantity, amount, status, gateway_order_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order entity.Order
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderItem,
		&order.Quantity,
		&order.Amount,
		&order.Status,
		&order.GatewayOrderID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.Int64("order_id", id),
		)
		return nil, fmt.Errorf("find order by ID %d: %w", id, err)
	}

	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, from, to entity.OrderStatus, gatewayOrderID *string) error {
	query := `
		UPDATE orders
		SET status = $3, gateway_order_id = COALESCE($4, gateway_order_id), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, orderID, from, to, gatewayOrderID)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.Int64("order_id", orderID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("update order %d status to %s: %w", orderID, to, translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %d is not %s: %w", orderID, from, ErrStatusChanged)
	}

	return nil
}
