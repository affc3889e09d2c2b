package services

import (
	"context"
	"time"

	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/cache"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/yigit/campusdesk/internal/pkg/auth"
	"github.com/yigit/campusdesk/internal/pkg/logger"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// ProfileStore is the profile persistence the auth service needs.
type ProfileStore interface {
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetWithCredentials(ctx context.Context, id int64) (*models.Profile, error)
	CreateWithPassword(ctx context.Context, profile *models.Profile) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, profileID int64, expiryDate time.Time) error
	ConsumeToken(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllProfileTokens(ctx context.Context, profileID int64) error
}

// AuthService handles authentication operations
type AuthService struct {
	profiles   ProfileStore
	tokens     TokenStore
	blacklist  cache.TokenBlacklist
	jwtService *pkgauth.JWTService
	validator  *validation.Validator
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	profiles ProfileStore,
	tokens TokenStore,
	blacklist cache.TokenBlacklist,
	jwtService *pkgauth.JWTService,
	v *validation.Validator,
) *AuthService {
	return &AuthService{
		profiles:   profiles,
		tokens:     tokens,
		blacklist:  blacklist,
		jwtService: jwtService,
		validator:  v,
		now:        time.Now,
	}
}

func checkPassword(fe validation.FieldErrors, field, password string) {
	if err := pkgauth.CheckPasswordStrength(password); err != nil {
		fe.Add(field, err.Error())
	}
}

// SignUp registers a student or lecturer and signs them in.
func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.SessionResponse, error) {
	var profile *models.Profile
	err := validation.Submit(ctx, s.validator, req, func(ctx context.Context, req *dto.SignUpRequest) error {
		var err error
		profile, err = s.createProfile(ctx, req.Email, req.Password, req.FullName, req.Role, req.Phone)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Int64("profileID", profile.ID).Str("role", string(profile.Role)).Msg("Profile signed up")
	return s.issueSession(ctx, profile)
}

// CreateProfile lets an admin create a profile of any role.
func (s *AuthService) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*models.Profile, error) {
	var profile *models.Profile
	err := validation.Submit(ctx, s.validator, req, func(ctx context.Context, req *dto.CreateProfileRequest) error {
		var err error
		profile, err = s.createProfile(ctx, req.Email, req.Password, req.FullName, req.Role, req.Phone)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) createProfile(ctx context.Context, email, password, fullName string, role models.Role, phone *string) (*models.Profile, error) {
	fe := validation.FieldErrors{}
	checkPassword(fe, "password", password)
	if len(fe) > 0 {
		return nil, fe
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		Phone:        phone,
		IsActive:     true,
	}
	if err := s.profiles.CreateWithPassword(ctx, profile); err != nil {
		return nil, err
	}
	profile.PasswordHash = ""
	return profile, nil
}

// SignIn checks credentials and issues a token pair.
func (s *AuthService) SignIn(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	if fe := s.validator.Validate(req); fe != nil {
		return nil, fe
	}

	profile, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !pkgauth.CheckPassword(profile.PasswordHash, req.Password) {
		logger.FromContext(ctx).Info().Int64("profileID", profile.ID).Msg("Sign-in rejected, wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	profile.PasswordHash = ""

	now := s.now().UTC()
	if err := s.profiles.TouchLastLogin(ctx, profile.ID, now); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("profileID", profile.ID).Msg("Failed to record last login")
	} else {
		profile.LastLoginAt = &now
	}

	return s.issueSession(ctx, profile)
}

// Refresh exchanges a refresh token for a new pair. The old token is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.SessionResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	profileID, err := s.tokens.ConsumeToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}
	if !profile.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueSession(ctx, profile)
}

// SignOut revokes the refresh token and blacklists the access token until it expires.
func (s *AuthService) SignOut(ctx context.Context, claims *pkgauth.Claims, refreshToken string) error {
	if refreshToken != "" {
		if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil && !apperrors.Is(err, apperrors.ErrTokenRevoked) {
			return err
		}
	}

	if claims != nil && claims.ID != "" {
		if err := s.blacklist.BlacklistToken(ctx, claims.ID, s.jwtService.RemainingValidity(claims)); err != nil {
			return err
		}
		logger.FromContext(ctx).Info().Int64("profileID", claims.ProfileID).Msg("Profile signed out")
	}
	return nil
}

// CurrentProfile returns the caller's profile and landing path.
func (s *AuthService) CurrentProfile(ctx context.Context, profileID int64) (*dto.SessionResponse, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		Profile:     profile,
		LandingPath: auth.LandingPath(profile.Role),
	}, nil
}

// ChangePassword replaces the caller's password and revokes their refresh tokens.
func (s *AuthService) ChangePassword(ctx context.Context, profileID int64, req *dto.ChangePasswordRequest) error {
	return validation.Submit(ctx, s.validator, req, func(ctx context.Context, req *dto.ChangePasswordRequest) error {
		profile, err := s.profiles.GetWithCredentials(ctx, profileID)
		if err != nil {
			return err
		}
		if !pkgauth.CheckPassword(profile.PasswordHash, req.CurrentPassword) {
			return apperrors.ErrInvalidCredentials
		}

		fe := validation.FieldErrors{}
		checkPassword(fe, "newPassword", req.NewPassword)
		if len(fe) > 0 {
			return fe
		}

		hash, err := pkgauth.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		if err := s.profiles.UpdatePassword(ctx, profileID, hash); err != nil {
			return err
		}
		return s.tokens.RevokeAllProfileTokens(ctx, profileID)
	})
}

func (s *AuthService) issueSession(ctx context.Context, profile *models.Profile) (*dto.SessionResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.CreateToken(ctx, pair.RefreshToken, profile.ID, pair.RefreshExpiresAt); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Token: &dto.TokenResponse{
			AccessToken:           pair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             pair.ExpiresIn,
			RefreshToken:          pair.RefreshToken,
			RefreshTokenExpiresIn: pair.RefreshExpiresIn,
		},
		Profile:     profile,
		LandingPath: auth.LandingPath(profile.Role),
	}, nil
}
