package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/repositories"
	"github.com/yigit/campusdesk/internal/pkg/logger"
)

// ErrExportGenerateFail is returned when the workbook cannot be written.
var ErrExportGenerateFail = errors.New("failed to generate export workbook")

// ReportSource provides the rows behind exports.
type ReportSource interface {
	CourseGrades(ctx context.Context, courseID int64) ([]models.GradeReportRow, error)
	Payments(ctx context.Context, filter repositories.PaymentReportFilter) ([]models.PaymentReportRow, error)
}

// CourseLookup loads a course by id.
type CourseLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// ExportService renders reports as .xlsx workbooks.
type ExportService struct {
	reports ReportSource
	courses CourseLookup
	now     func() time.Time
}

// NewExportService creates a new ExportService
func NewExportService(reports ReportSource, courses CourseLookup) *ExportService {
	return &ExportService{reports: reports, courses: courses, now: time.Now}
}

// CourseGrades exports every grade of a course. Returns the workbook and a file name.
func (s *ExportService) CourseGrades(ctx context.Context, courseID int64) (*bytes.Buffer, string, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.reports.CourseGrades(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	header := []any{"Student Number", "Student Name", "Score", "Max Score", "Percentage", "Letter Grade", "Term"}
	data := make([][]any, len(rows))
	for i, r := range rows {
		data[i] = []any{r.StudentNumber, r.StudentName, r.Score, r.MaxScore, r.Percentage, r.LetterGrade, string(r.Term)}
	}

	title := fmt.Sprintf("%s %s grades", course.Code, course.Title)
	buf, err := s.workbook(ctx, "Grades", title, header, data)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("grades_%s.xlsx", course.Code), nil
}

// Payments exports payments matching filter.
func (s *ExportService) Payments(ctx context.Context, filter repositories.PaymentReportFilter) (*bytes.Buffer, string, error) {
	rows, err := s.reports.Payments(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	header := []any{"Reference", "Student Number", "Student Name", "Amount", "Method", "Status", "Paid At", "Recorded At"}
	data := make([][]any, len(rows))
	for i, r := range rows {
		paidAt := "-"
		if r.PaidAt != nil {
			paidAt = r.PaidAt.UTC().Format(time.RFC3339)
		}
		data[i] = []any{r.ReferenceNumber, r.StudentNumber, r.StudentName, r.Amount, r.Method, r.Status, paidAt, r.CreatedAt.UTC().Format(time.RFC3339)}
	}

	stamp := s.now().UTC().Format("20060102")
	buf, err := s.workbook(ctx, "Payments", "Payments exported "+stamp, header, data)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("payments_%s.xlsx", stamp), nil
}

// workbook writes a single-sheet workbook: a title row, a header row, then data.
func (s *ExportService) workbook(ctx context.Context, sheet, title string, header []any, data [][]any) (*bytes.Buffer, error) {
	log := logger.FromContext(ctx)

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetColWidth(sheet, "A", lastCol, 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.MergeCell(sheet, "A1", lastCol+"1")
	_ = f.SetCellStyle(sheet, "A1", lastCol+"2", headerStyle)

	if err := f.SetSheetRow(sheet, "A2", &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}
	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		log.Error().Err(err).Str("sheet", sheet).Msg("Failed to write workbook")
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}
