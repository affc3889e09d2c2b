package dto

import "github.com/yigit/campusdesk/internal/app/models"

// SignUpRequest is the public registration form.
type SignUpRequest struct {
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	FullName string      `json:"fullName" validate:"required,min=2,max=150"`
	Role     models.Role `json:"role" validate:"required,oneof=lecturer student"`
	Phone    *string     `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// CreateProfileRequest is used by admins and may create any role.
type CreateProfileRequest struct {
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	FullName string      `json:"fullName" validate:"required,min=2,max=150"`
	Role     models.Role `json:"role" validate:"required,oneof=admin lecturer student"`
	Phone    *string     `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries the opaque refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ChangePasswordRequest changes the caller's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// SessionResponse is returned on sign-in and by the session endpoint.
type SessionResponse struct {
	Token       *TokenResponse  `json:"token,omitempty"`
	Profile     *models.Profile `json:"profile"`
	LandingPath string          `json:"landingPath" example:"/student"`
}

// RouteCheckResponse is the route guard's decision for a client path.
type RouteCheckResponse struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}
