package model

import (
	"time"
)

type UserRole string

const (
	Parent UserRole = "parent"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	FirstName string   `gorm:"size:100" json:"first_name"`
	LastName  string   `gorm:"size:100" json:"last_name"`
	Role      UserRole `gorm:"size:10;default:'parent'" json:"role"`

	// Accounts stay inactive until the verification email is confirmed.
	IsActive               bool   `gorm:"default:false" json:"is_active"`
	EmailVerificationToken string `gorm:"size:100;index" json:"-"`
	PasswordResetToken     string `gorm:"size:100;index" json:"-"`

	LastLogin time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsParent() bool {
	return u.Role == Parent
}
