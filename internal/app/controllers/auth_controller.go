package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/middleware"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/yigit/campusdesk/internal/pkg/auth"
)

// AuthService is the authentication surface the controller needs.
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error)
	CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*models.Profile, error)
	SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, claims *pkgauth.Claims, refreshToken string) error
	CurrentProfile(ctx context.Context, profileID int64) (*dto.SessionResponse, error)
	ChangePassword(ctx context.Context, profileID int64, req *dto.ChangePasswordRequest) error
}

// AuthController handles authentication related operations
type AuthController struct {
	authService AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// SignUp handles POST /auth/signup
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := bindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.authService.SignUp(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, session)
}

// Login handles POST /auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.authService.SignIn(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, session)
}

// RefreshToken handles POST /auth/refresh
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := bindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, session)
}

// Logout handles POST /auth/logout. The refresh token in the body is optional.
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.RefreshTokenRequest
	if ctx.Request.ContentLength > 0 {
		if err := bindJSON(ctx, &req); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	if err := c.authService.SignOut(ctx.Request.Context(), claims, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, gin.H{"signedOut": true})
}

// Me handles GET /auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	session, err := requireSession(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.authService.CurrentProfile(ctx.Request.Context(), session.ProfileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, resp)
}

// ChangePassword handles POST /auth/change-password
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	session, err := requireSession(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := bindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), session.ProfileID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, gin.H{"passwordChanged": true})
}

// RouteCheck handles GET /auth/route-check?path=. Works with or without a session.
func (c *AuthController) RouteCheck(ctx *gin.Context) {
	path := ctx.Query("path")

	var session *auth.Session
	if s, ok := middleware.SessionFrom(ctx); ok {
		session = s
	}

	decision := auth.Resolve(session, path)
	respond(ctx, http.StatusOK, dto.RouteCheckResponse{
		Path:     path,
		Allowed:  decision.Allowed,
		Redirect: decision.Redirect,
	})
}

// CreateProfile handles POST /profiles (admin only)
func (c *AuthController) CreateProfile(ctx *gin.Context) {
	var req dto.CreateProfileRequest
	if err := bindJSON(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.authService.CreateProfile(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, profile)
}
