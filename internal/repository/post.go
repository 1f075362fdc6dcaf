package repository

import (
	"context"

	"postapi/internal/models"

	"gorm.io/gorm"
)

// Reads join the owning user so each post carries its author's username,
// which is NULL when the user does not resolve.
const (
	selectPostsWithAuthor = `SELECT p.id, p.title, p.content, p.status, p.created_at, p.user_id, u.username ` +
		`FROM posts p LEFT JOIN users u ON p.user_id = u.id`
	newestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

	listPostsSQL     = selectPostsWithAuthor + newestFirst
	getPostSQL       = selectPostsWithAuthor + ` WHERE p.id = ?`
	listUserPostsSQL = selectPostsWithAuthor + ` WHERE p.user_id = ?` + newestFirst
	insertPostSQL    = `INSERT INTO posts (user_id, title, content, status) VALUES (?, ?, ?, ?) RETURNING id, user_id, title, content, status, created_at`
	postsTableName   = "posts"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context) ([]models.PostWithAuthor, error)
	GetByID(ctx context.Context, id uint) (*models.PostWithAuthor, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.PostWithAuthor, error)
	Create(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	posts := make([]models.PostWithAuthor, 0)
	err := run(ctx, r.db, "list", postsTableName, func(tx *gorm.DB) error {
		return tx.Raw(listPostsSQL).Scan(&posts).Error
	})
	if err != nil {
		return nil, classify("list", postsTableName, err, "")
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.PostWithAuthor, error) {
	var post models.PostWithAuthor
	var found int64
	err := run(ctx, r.db, "get", postsTableName, func(tx *gorm.DB) error {
		res := tx.Raw(getPostSQL, id).Scan(&post)
		found = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return nil, classify("get", postsTableName, err, "")
	}
	if found == 0 {
		return nil, models.NewNotFoundError("Post")
	}
	return &post, nil
}

// GetByUserID does not check that the user exists; an unknown user has no posts.
func (r *postRepository) GetByUserID(ctx context.Context, userID uint) ([]models.PostWithAuthor, error) {
	posts := make([]models.PostWithAuthor, 0)
	err := run(ctx, r.db, "list_by_user", postsTableName, func(tx *gorm.DB) error {
		return tx.Raw(listUserPostsSQL, userID).Scan(&posts).Error
	})
	if err != nil {
		return nil, classify("list_by_user", postsTableName, err, "")
	}
	return posts, nil
}

// Create inserts post as given; a dangling user_id is the store's to reject.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := run(ctx, r.db, "create", postsTableName, func(tx *gorm.DB) error {
		return tx.Raw(insertPostSQL, post.UserID, post.Title, post.Content, post.Status).Scan(post).Error
	})
	if err != nil {
		return classify("create", postsTableName, err, "")
	}
	return nil
}
