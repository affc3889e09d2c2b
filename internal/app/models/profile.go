package models

import "time"

// Profile is the identity record behind a login.
type Profile struct {
	Base
	Email        string     `json:"email" db:"email" validate:"required,email,max=255" example:"jane@school.edu"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"fullName" db:"full_name" validate:"required,min=2,max=150" example:"Jane Doe"`
	Role         Role       `json:"role" db:"role" validate:"required,oneof=admin lecturer student" example:"student"`
	Phone        *string    `json:"phone,omitempty" db:"phone" validate:"omitempty,max=30"`
	AvatarURL    *string    `json:"avatarUrl,omitempty" db:"avatar_url" validate:"omitempty,url"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
