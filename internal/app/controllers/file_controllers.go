package controllers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/repositories"
	"github.com/yigit/campusdesk/internal/middleware"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var paymentStatuses = map[string]bool{
	models.PaymentStatusPending:   true,
	models.PaymentStatusCompleted: true,
	models.PaymentStatusFailed:    true,
	models.PaymentStatusRefunded:  true,
}

// ExportService renders workbooks.
type ExportService interface {
	CourseGrades(ctx context.Context, courseID int64) (*bytes.Buffer, string, error)
	Payments(ctx context.Context, filter repositories.PaymentReportFilter) (*bytes.Buffer, string, error)
}

// ExportController streams .xlsx exports.
type ExportController struct {
	exports ExportService
}

// NewExportController creates a new ExportController
func NewExportController(exports ExportService) *ExportController {
	return &ExportController{exports: exports}
}

func sendWorkbook(ctx *gin.Context, buf *bytes.Buffer, name string) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CourseGrades handles GET /exports/courses/:id/grades
func (c *ExportController) CourseGrades(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	buf, name, err := c.exports.CourseGrades(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sendWorkbook(ctx, buf, name)
}

// Payments handles GET /exports/payments?status=&studentId=
func (c *ExportController) Payments(ctx *gin.Context) {
	filter := repositories.PaymentReportFilter{Status: ctx.Query("status")}

	if filter.Status != "" && !paymentStatuses[filter.Status] {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("unknown payment status "+filter.Status))
		return
	}

	if raw := ctx.Query("studentId"); raw != "" {
		studentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || studentID <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("studentId must be a positive integer"))
			return
		}
		filter.StudentID = studentID
	}

	buf, name, err := c.exports.Payments(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sendWorkbook(ctx, buf, name)
}

// MaterialFileService attaches uploads to materials.
type MaterialFileService interface {
	AttachFile(ctx context.Context, id int64, file *multipart.FileHeader) (*models.Material, error)
}

// MaterialController handles material uploads.
type MaterialController struct {
	files MaterialFileService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(files MaterialFileService) *MaterialController {
	return &MaterialController{files: files}
}

// UploadFile handles POST /materials/:id/file (multipart field "file")
func (c *MaterialController) UploadFile(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("file is required"))
		return
	}

	material, err := c.files.AttachFile(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, material)
}
