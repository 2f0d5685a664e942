package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type User struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Username  string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	FirstName string   `json:"first_name" gorm:"not null;size:100"`
	LastName  string   `json:"last_name" gorm:"not null;size:100"`
	Password  string   `json:"-" gorm:"not null;size:255"`
	Role      UserRole `json:"role" gorm:"not null;default:user;size:20"`

	// Wallet balance in the smallest currency unit. Mutated only by
	// purchases (debit), admin top-ups and course-removal refunds (credit).
	Balance int64 `json:"balance" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
