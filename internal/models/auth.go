package models

import (
	"time"
)

// User is an account allowed to sign in to the inventory console.
// PasswordHash holds a bcrypt digest; plaintext is never stored.
type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Username     string    `json:"username" gorm:"uniqueIndex;Column:username"`
	PasswordHash string    `json:"-" gorm:"Column:password_hash"`
	UserType     string    `json:"user_type" gorm:"Column:user_type"`
	FullName     string    `json:"full_name" gorm:"Column:full_name"`
	IsActive     bool      `json:"is_active" gorm:"Column:is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
