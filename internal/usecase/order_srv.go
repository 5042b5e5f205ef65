package usecase

import (
	"context"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/gateway"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *request.SaveOrderRequest) (*response.SaveOrderResponse, error)
}

type orderService struct {
	repo    *repository.Repository
	users   UserService
	gateway gateway.Gateway
	log     *zap.Logger
}

func NewOrderService(repo *repository.Repository, users UserService, gw gateway.Gateway, log *zap.Logger) OrderService {
	return &orderService{
		repo:    repo,
		users:   users,
		gateway: gw,
		log:     log.With(zap.String("service", "order")),
	}
}

// CreateOrder commits the user and a pending order first, then asks the
// gateway for a remote order. The local row ends up "created" with the
// remote id, or "failed" when the gateway call fails.
func (s *orderService) CreateOrder(ctx context.Context, req *request.SaveOrderRequest) (*response.SaveOrderResponse, error) {
	fields := utils.ValidateStruct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	if req.Amount == nil {
		fields["amount"] = "This field is required"
	} else if !req.Amount.IsPositive() {
		fields["amount"] = "Must be greater than 0"
	} else if req.Amount.Round(2).GreaterThan(MaxAmount) {
		fields["amount"] = "Maximum value is " + MaxAmount.StringFixed(2)
	}
	if len(fields) > 0 {
		s.log.Warn("Save order validation failed", zap.Any("errors", fields))
		return nil, validationError("Validation failed", fields)
	}

	order := &entity.Order{
		OrderItem: req.OrderItem,
		Quantity:  req.Quantity,
		Amount:    req.Amount.Round(2),
		Status:    entity.OrderStatusPending,
	}

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		userID, _, err := s.users.UpsertUserByEmail(ctx, req.Name, req.Email, req.Phone)
		if err != nil {
			return err
		}
		order.UserID = userID

		return s.repo.Order.Create(ctx, order)
	})
	if err != nil {
		return nil, storageError("save order", err)
	}

	remote, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   ToMinorUnits(order.Amount),
		Currency: s.gateway.Currency(),
		Receipt:  utils.GenerateOrderReceipt(order.ID),
	})
	if err != nil {
		s.log.Error("Gateway order failed; marking order failed",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
		)
		if uerr := s.repo.Order.UpdateStatus(context.WithoutCancel(ctx), order.ID, entity.OrderStatusPending, entity.OrderStatusFailed, nil); uerr != nil {
			s.log.Error("Failed to mark order failed", zap.Error(uerr), zap.Int64("order_id", order.ID))
		}
		return nil, externalError("Payment gateway could not create an order", err)
	}

	if err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCreated, &remote.ID); err != nil {
		s.log.Error("Gateway order created but not recorded",
			zap.Error(err),
			zap.Int64("order_id", order.ID),
			zap.String("gateway_order_id", remote.ID),
		)
		return nil, internalError("record gateway order", err)
	}

	s.log.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.String("gateway_order_id", remote.ID),
	)

	return &response.SaveOrderResponse{
		Status:    utils.StatusSuccess,
		OrderID:   remote.ID,
		DBOrderID: order.ID,
	}, nil
}
