// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/middleware"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/helpers"
)

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(name + " must be a positive integer")
	}
	return id, nil
}

// bindJSON decodes the request body into dest.
func bindJSON(ctx *gin.Context, dest any) error {
	if err := ctx.ShouldBindJSON(dest); err != nil {
		return apperrors.NewBadRequestError("invalid request body: " + err.Error())
	}
	return nil
}

// requireSession returns the caller's session set by JWTAuth.
func requireSession(ctx *gin.Context) (*auth.Session, error) {
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return session, nil
}

func respond(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, dto.NewSuccessResponse(data))
}

func respondPage[T any](ctx *gin.Context, items []*T, total int64, page, size int) {
	if items == nil {
		items = []*T{}
	}
	respond(ctx, http.StatusOK, dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	})
}
