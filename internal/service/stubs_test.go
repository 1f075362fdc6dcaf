package service

import (
	"context"
	"errors"
	"testing"

	"postapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	listFn    func(context.Context) ([]models.User, error)
	getByIDFn func(context.Context, uint) (*models.User, error)
	createFn  func(context.Context, *models.User) error
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn:    func(context.Context) ([]models.User, error) { return []models.User{}, nil },
		getByIDFn: func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		createFn:  func(context.Context, *models.User) error { return nil },
	}
}

type postRepoStub struct {
	listFn        func(context.Context) ([]models.PostWithAuthor, error)
	getByIDFn     func(context.Context, uint) (*models.PostWithAuthor, error)
	getByUserIDFn func(context.Context, uint) ([]models.PostWithAuthor, error)
	createFn      func(context.Context, *models.Post) error
}

func (s *postRepoStub) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.PostWithAuthor, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint) ([]models.PostWithAuthor, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:        func(context.Context) ([]models.PostWithAuthor, error) { return []models.PostWithAuthor{}, nil },
		getByIDFn:     func(context.Context, uint) (*models.PostWithAuthor, error) { return &models.PostWithAuthor{}, nil },
		getByUserIDFn: func(context.Context, uint) ([]models.PostWithAuthor, error) { return []models.PostWithAuthor{}, nil },
		createFn:      func(context.Context, *models.Post) error { return nil },
	}
}

func ptr[T any](v T) *T { return &v }

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR and the given message.
func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, message, appErr.Message)
}
