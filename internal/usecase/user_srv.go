package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// UpsertUserByEmail returns the id stored for email, inserting the user
	// when the email is new. An existing user's name and phone are kept.
	UpsertUserByEmail(ctx context.Context, name, email string, phone *string) (int64, bool, error)
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, bool, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) UpsertUserByEmail(ctx context.Context, name, email string, phone *string) (int64, bool, error) {
	user := &entity.User{
		Name:  strings.TrimSpace(name),
		Email: normalizeEmail(email),
		Phone: phone,
	}

	inserted, err := us.repo.User.InsertIfAbsent(ctx, user)
	if err != nil {
		return 0, false, storageError("save user", err)
	}
	if inserted {
		us.log.Info("User created",
			zap.Int64("user_id", user.ID),
			zap.String("email", user.Email),
		)
		return user.ID, true, nil
	}

	existing, err := us.repo.User.FindByEmail(ctx, user.Email)
	if err != nil {
		return 0, false, internalError("find user", err)
	}
	if existing == nil {
		return 0, false, internalError("find user", fmt.Errorf("user %s vanished after conflict", user.Email))
	}

	return existing.ID, false, nil
}

// Register upserts the user and returns the stored row. The flag reports
// whether the row is new.
func (us *userService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, false, validationError("Validation failed", errs)
	}

	id, created, err := us.UpsertUserByEmail(ctx, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, false, err
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, false, internalError("load user", err)
	}
	if user == nil {
		return nil, false, notFoundError(fmt.Sprintf("User %d not found", id))
	}

	resp := response.UserToResponse(user)
	return &resp, created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
