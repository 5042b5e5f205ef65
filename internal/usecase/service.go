package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/gateway"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Booking BookingService
	User    UserService
	Order   OrderService
}

func NewService(repo *repository.Repository, config *utils.Config, gw gateway.Gateway, log *zap.Logger) *Service {
	users := NewUserService(repo, log)

	return &Service{
		Catalog: NewCatalogService(repo, config, log),
		Booking: NewBookingService(repo, config, gw, log),
		User:    users,
		Order:   NewOrderService(repo, users, gw, log),
	}
}
