package service

import (
	"context"

	"postapi/internal/middleware"
	"postapi/internal/models"
	"postapi/internal/repository"
	"postapi/internal/validation"
)

const msgPostFieldsRequired = "user_id and title are required"

type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput is the body of POST /posts. Content and Status fall back to
// their defaults when absent.
type CreatePostInput struct {
	UserID  *uint   `json:"user_id" validate:"required"`
	Title   *string `json:"title" validate:"required"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.PostWithAuthor, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.PostWithAuthor, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetUserPosts returns the user's posts newest first; the user itself is not looked up.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint) ([]models.PostWithAuthor, error) {
	return s.postRepo.GetByUserID(ctx, userID)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.Required(&in, msgPostFieldsRequired); err != nil {
		middleware.Logger.DebugContext(ctx, "rejected post payload",
			"missing", validation.MissingFields(&in))
		return nil, err
	}

	post := &models.Post{
		UserID:  *in.UserID,
		Title:   *in.Title,
		Content: valueOr(in.Content, models.DefaultPostContent),
		Status:  valueOr(in.Status, models.DefaultPostStatus),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
