package repository

import (
	"context"

	"postapi/internal/models"

	"gorm.io/gorm"
)

const (
	listUsersSQL   = `SELECT id, username, email, created_at FROM users ORDER BY id`
	getUserSQL     = `SELECT id, username, email, created_at FROM users WHERE id = ?`
	insertUserSQL  = `INSERT INTO users (username, email) VALUES (?, ?) RETURNING id, username, email, created_at`
	userConflict   = "Username or email already exists"
	usersTableName = "users"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// Create inserts user and fills in the generated columns.
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := run(ctx, r.db, "list", usersTableName, func(tx *gorm.DB) error {
		return tx.Raw(listUsersSQL).Scan(&users).Error
	})
	if err != nil {
		return nil, classify("list", usersTableName, err, "")
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	var found int64
	err := run(ctx, r.db, "get", usersTableName, func(tx *gorm.DB) error {
		res := tx.Raw(getUserSQL, id).Scan(&user)
		found = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return nil, classify("get", usersTableName, err, "")
	}
	if found == 0 {
		return nil, models.NewNotFoundError("User")
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := run(ctx, r.db, "create", usersTableName, func(tx *gorm.DB) error {
		return tx.Raw(insertUserSQL, user.Username, user.Email).Scan(user).Error
	})
	if err != nil {
		return classify("create", usersTableName, err, userConflict)
	}
	return nil
}
