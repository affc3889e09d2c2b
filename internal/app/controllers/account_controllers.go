package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/services"
	"github.com/yigit/campusdesk/internal/middleware"
	"github.com/yigit/campusdesk/internal/pkg/helpers"
)

// DashboardService builds the dashboard for a session.
type DashboardService interface {
	ForSession(ctx context.Context, session *auth.Session) (any, error)
}

// DashboardController serves role dashboards.
type DashboardController struct {
	dashboards DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboards DashboardService) *DashboardController {
	return &DashboardController{dashboards: dashboards}
}

// Get handles GET /dashboard
func (c *DashboardController) Get(ctx *gin.Context) {
	session, err := requireSession(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	dashboard, err := c.dashboards.ForSession(ctx.Request.Context(), session)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dashboard)
}

// MeController serves the caller's own records.
type MeController struct {
	me *services.MeService
}

// NewMeController creates a new MeController
func NewMeController(me *services.MeService) *MeController {
	return &MeController{me: me}
}

// mePage adapts a MeService view into a paginated handler.
func mePage[T any](view func(ctx context.Context, profileID int64, page, size int) (*services.Page[T], error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, err := requireSession(ctx)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		page, size := helpers.ParsePaginationParams(ctx)

		result, err := view(ctx.Request.Context(), session.ProfileID, page, size)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}

		respondPage(ctx, result.Items, result.Total, page, size)
	}
}

// Enrollments handles GET /me/enrollments
func (c *MeController) Enrollments() gin.HandlerFunc { return mePage(c.me.Enrollments) }

// Grades handles GET /me/grades
func (c *MeController) Grades() gin.HandlerFunc { return mePage(c.me.Grades) }

// Attendance handles GET /me/attendance
func (c *MeController) Attendance() gin.HandlerFunc { return mePage(c.me.Attendance) }

// Payments handles GET /me/payments
func (c *MeController) Payments() gin.HandlerFunc { return mePage(c.me.Payments) }

// Courses handles GET /me/courses
func (c *MeController) Courses() gin.HandlerFunc { return mePage(c.me.Courses) }
