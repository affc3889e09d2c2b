package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/cache"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/yigit/campusdesk/internal/pkg/auth"
	"github.com/yigit/campusdesk/internal/pkg/logger"
)

const (
	sessionKey = "session"
	claimsKey  = "claims"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *pkgauth.JWTService
	blacklist  cache.TokenBlacklist
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *pkgauth.JWTService, blacklist cache.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// authenticate resolves the bearer token of the request into claims.
func (m *AuthMiddleware) authenticate(c *gin.Context) (*pkgauth.Claims, error) {
	tokenString, err := pkgauth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		if errors.Is(err, pkgauth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	if m.blacklist != nil {
		revoked, err := m.blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperrors.ErrTokenRevoked
		}
	}

	return claims, nil
}

// attach stores the identity on the gin context and tags the request logger.
func attach(c *gin.Context, claims *pkgauth.Claims) {
	c.Set(claimsKey, claims)
	c.Set(sessionKey, &auth.Session{
		ProfileID: claims.ProfileID,
		Email:     claims.Email,
		Role:      claims.Role,
	})

	ctx := c.Request.Context()
	l := logger.FromContext(ctx).With().
		Int64("profile_id", claims.ProfileID).
		Str("role", string(claims.Role)).
		Logger()
	c.Request = c.Request.WithContext(l.WithContext(ctx))
}

// JWTAuth rejects requests without a valid, unrevoked access token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		attach(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth attaches the session when a valid token is present and
// lets anonymous requests through.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := m.authenticate(c); err == nil {
				attach(c, claims)
			}
		}
		c.Next()
	}
}

// RoleRequired middleware to check if the caller has one of roles
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		if !allowed[session.Role] {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// SessionFrom returns the session stored by JWTAuth.
func SessionFrom(c *gin.Context) (*auth.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*auth.Session)
	return session, ok
}

// ClaimsFrom returns the access token claims stored by JWTAuth.
func ClaimsFrom(c *gin.Context) (*pkgauth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*pkgauth.Claims)
	return claims, ok
}
