package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/logger"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// HandleAPIError maps err onto a status code and an error envelope.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)

	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	if fe, ok := validation.AsFieldErrors(err); ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(fe)
		if len(fe) == 1 {
			for field := range fe {
				detail.WithField(field)
			}
		}
		return http.StatusBadRequest, detail
	}

	var status int
	var code dto.ErrorCode
	var fallback string

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, code, fallback = http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"
	case errors.Is(err, apperrors.ErrBadRequest):
		status, code, fallback = http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, code, fallback = http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		status, code, fallback = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status, code, fallback = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"
	case errors.Is(err, apperrors.ErrConflict):
		status, code, fallback = http.StatusConflict, dto.ErrorCodeConflict, "Conflict"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, code, fallback = http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"
	case errors.Is(err, apperrors.ErrAccountDisabled):
		status, code, fallback = http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, code, fallback = http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenNotFound):
		status, code, fallback = http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"
	case errors.Is(err, apperrors.ErrTokenRevoked):
		status, code, fallback = http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		status, code, fallback = http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrUnauthenticated):
		status, code, fallback = http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, code, fallback = http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	detail := dto.NewErrorDetail(code, fallback)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Code != "" {
			detail.Code = dto.ErrorCode(custom.Code)
		}
		if custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
	}

	return status, detail
}
