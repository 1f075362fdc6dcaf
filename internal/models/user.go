// Package models contains the data types served by the API and the error taxonomy shared across layers.
package models

import "time"

// User is a registered account. ID and CreatedAt are assigned by the store.
type User struct {
	ID        uint      `json:"id" gorm:"column:id"`
	Username  string    `json:"username" gorm:"column:username"`
	Email     string    `json:"email" gorm:"column:email"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}
