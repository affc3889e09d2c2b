package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusdesk/internal/app/models"
)

// ReportRepository runs the joined read queries behind exports.
type ReportRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// PaymentReportFilter narrows the payment export. Zero values match everything.
type PaymentReportFilter struct {
	Status    string
	StudentID int64
}

// CourseGrades returns every grade in a course with the student's number and name.
func (r *ReportRepository) CourseGrades(ctx context.Context, courseID int64) ([]models.GradeReportRow, error) {
	sql, args, err := r.sb.Select(
		"s.student_number", "p.full_name", "g.score", "g.max_score",
		"g.percentage", "g.letter_grade", "g.term",
	).
		From("grades g").
		Join("students s ON s.id = g.student_id").
		Join("profiles p ON p.id = s.profile_id").
		Where(squirrel.Eq{"g.course_id": courseID}).
		OrderBy("s.student_number ASC", "g.term ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying course grades: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.GradeReportRow, error) {
		var g models.GradeReportRow
		err := row.Scan(&g.StudentNumber, &g.StudentName, &g.Score, &g.MaxScore, &g.Percentage, &g.LetterGrade, &g.Term)
		return g, err
	})
}

// Payments returns payments matching filter, newest first.
func (r *ReportRepository) Payments(ctx context.Context, filter PaymentReportFilter) ([]models.PaymentReportRow, error) {
	q := r.sb.Select(
		"pay.reference_number", "s.student_number", "p.full_name", "pay.amount",
		"pay.method", "pay.status", "pay.paid_at", "pay.created_at",
	).
		From("payments pay").
		Join("students s ON s.id = pay.student_id").
		Join("profiles p ON p.id = s.profile_id").
		OrderBy("pay.created_at DESC")
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"pay.status": filter.Status})
	}
	if filter.StudentID > 0 {
		q = q.Where(squirrel.Eq{"pay.student_id": filter.StudentID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payments report query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payments report: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentReportRow, error) {
		var p models.PaymentReportRow
		err := row.Scan(&p.ReferenceNumber, &p.StudentNumber, &p.StudentName, &p.Amount, &p.Method, &p.Status, &p.PaidAt, &p.CreatedAt)
		return p, err
	})
}
