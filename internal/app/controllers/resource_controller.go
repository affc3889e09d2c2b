package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/middleware"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/helpers"
)

// ResourceService is the CRUD surface a ResourceController serves.
type ResourceService[T any] interface {
	List(ctx context.Context, page, size int) ([]*T, int64, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	ListBy(ctx context.Context, column string, value int64, page, size int) ([]*T, int64, error)
	Create(ctx context.Context, draft *T) (*T, error)
	Update(ctx context.Context, id int64, draft *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Resource is the set of handlers a CRUD resource exposes.
type Resource interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	ListBy(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

// ResourceController serves one entity over JSON.
type ResourceController[T any] struct {
	service ResourceService[T]
}

// NewResourceController creates a new ResourceController
func NewResourceController[T any](service ResourceService[T]) *ResourceController[T] {
	return &ResourceController[T]{service: service}
}

// List handles GET /<resource>?page=&size=
func (c *ResourceController[T]) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	items, total, err := c.service.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, items, total, page, size)
}

// GetByID handles GET /<resource>/:id
func (c *ResourceController[T]) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, item)
}

// ListBy handles GET /<resource>/by/:column/:value
func (c *ResourceController[T]) ListBy(ctx *gin.Context) {
	value, err := strconv.ParseInt(ctx.Param("value"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("value must be an integer id"))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	items, total, err := c.service.ListBy(ctx.Request.Context(), ctx.Param("column"), value, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPage(ctx, items, total, page, size)
}

// Create handles POST /<resource>
func (c *ResourceController[T]) Create(ctx *gin.Context) {
	var draft T
	if err := bindJSON(ctx, &draft); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), &draft)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, item)
}

// Update handles PUT /<resource>/:id
func (c *ResourceController[T]) Update(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var draft T
	if err := bindJSON(ctx, &draft); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.service.Update(ctx.Request.Context(), id, &draft)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, item)
}

// Delete handles DELETE /<resource>/:id
func (c *ResourceController[T]) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, gin.H{"id": id})
}
