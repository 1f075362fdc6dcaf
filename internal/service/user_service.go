// Package service holds payload validation and defaulting in front of the repositories.
package service

import (
	"context"

	"postapi/internal/middleware"
	"postapi/internal/models"
	"postapi/internal/repository"
	"postapi/internal/validation"
)

const msgUserFieldsRequired = "username and email are required"

type UserService struct {
	userRepo repository.UserRepository
}

// CreateUserInput is the body of POST /users. A nil field was absent from the request.
type CreateUserInput struct {
	Username *string `json:"username" validate:"required"`
	Email    *string `json:"email" validate:"required"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser rejects the payload before touching the store when a required field is absent.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validation.Required(&in, msgUserFieldsRequired); err != nil {
		middleware.Logger.DebugContext(ctx, "rejected user payload",
			"missing", validation.MissingFields(&in))
		return nil, err
	}

	user := &models.User{
		Username: *in.Username,
		Email:    *in.Email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
