package models

import "time"

// Default values applied to optional post fields on create.
const (
	DefaultPostContent = ""
	DefaultPostStatus  = "draft"
)

// Post is the stored shape of a post, as returned by create.
type Post struct {
	ID        uint      `json:"id" gorm:"column:id"`
	UserID    uint      `json:"user_id" gorm:"column:user_id"`
	Title     string    `json:"title" gorm:"column:title"`
	Content   string    `json:"content" gorm:"column:content"`
	Status    string    `json:"status" gorm:"column:status"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// PostWithAuthor is the read shape of a post. Username is nil when the
// owning user no longer resolves.
type PostWithAuthor struct {
	Post
	Username *string `json:"username" gorm:"column:username"`
}
