package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/pkg/grading"
)

const recentAnnouncementLimit = 5

// DashboardRepository computes the per-role dashboard aggregates.
type DashboardRepository struct {
	db            DBTX
	sb            squirrel.StatementBuilderType
	now           func() time.Time
	announcements *Table[models.Announcement, *models.Announcement]
	courses       *Table[models.Course, *models.Course]
	exams         *Table[models.Exam, *models.Exam]
	grades        *Table[models.Grade, *models.Grade]
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db DBTX) *DashboardRepository {
	return &DashboardRepository{
		db:            db,
		sb:            squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now:           time.Now,
		announcements: NewTable[models.Announcement](db, announcementSpec()),
		courses:       NewTable[models.Course](db, courseSpec()),
		exams:         NewTable[models.Exam](db, examSpec()),
		grades:        NewTable[models.Grade](db, gradeSpec()),
	}
}

func (r *DashboardRepository) scalar(ctx context.Context, dest any, q squirrel.SelectBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build dashboard query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest); err != nil {
		return fmt.Errorf("error executing dashboard query: %w", err)
	}
	return nil
}

func (r *DashboardRepository) count(ctx context.Context, table string, pred squirrel.Sqlizer) (int64, error) {
	q := r.sb.Select("COUNT(*)").From(table)
	if pred != nil {
		q = q.Where(pred)
	}
	var n int64
	err := r.scalar(ctx, &n, q)
	return n, err
}

func (r *DashboardRepository) recentAnnouncements(ctx context.Context, audiences ...string) ([]*models.Announcement, error) {
	pred := squirrel.And{squirrel.Or{
		squirrel.Eq{"published_at": nil},
		squirrel.LtOrEq{"published_at": r.now()},
	}}
	if len(audiences) > 0 {
		pred = append(pred, squirrel.Eq{"audience": audiences})
	}
	return r.announcements.FindAll(ctx, pred, "created_at DESC", recentAnnouncementLimit)
}

// AdminSummary returns school-wide counts.
func (r *DashboardRepository) AdminSummary(ctx context.Context) (*dto.AdminDashboard, error) {
	d := &dto.AdminDashboard{}
	counts := []struct {
		dest  *int64
		table string
		pred  squirrel.Sqlizer
	}{
		{&d.Students, "students", nil},
		{&d.Lecturers, "lecturers", nil},
		{&d.Courses, "courses", nil},
		{&d.Staff, "staff", nil},
		{&d.PendingPayments, "payments", squirrel.Eq{"status": models.PaymentStatusPending}},
		{&d.OpenTickets, "support_tickets", squirrel.Eq{"status": []string{models.TicketStatusOpen, models.TicketStatusInProgress}}},
	}
	for _, c := range counts {
		n, err := r.count(ctx, c.table, c.pred)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	err := r.scalar(ctx, &d.CollectedAmount, r.sb.Select("COALESCE(SUM(amount), 0)::float8").
		From("payments").
		Where(squirrel.Eq{"status": models.PaymentStatusCompleted}))
	if err != nil {
		return nil, err
	}

	if d.RecentAnnouncements, err = r.recentAnnouncements(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// LecturerSummary returns the teaching load of one lecturer.
func (r *DashboardRepository) LecturerSummary(ctx context.Context, lecturerID int64) (*dto.LecturerDashboard, error) {
	d := &dto.LecturerDashboard{}
	var err error

	if d.Courses, err = r.courses.FindAll(ctx, squirrel.Eq{"lecturer_id": lecturerID}, "", 0); err != nil {
		return nil, err
	}
	if d.Assignments, err = r.count(ctx, "assignments", squirrel.Eq{"lecturer_id": lecturerID}); err != nil {
		return nil, err
	}
	if d.Materials, err = r.count(ctx, "materials", squirrel.Eq{"lecturer_id": lecturerID}); err != nil {
		return nil, err
	}

	d.UpcomingExams = []*models.Exam{}
	if len(d.Courses) > 0 {
		ids := make([]int64, len(d.Courses))
		for i, c := range d.Courses {
			ids[i] = c.ID
		}
		d.UpcomingExams, err = r.exams.FindAll(ctx, squirrel.And{
			squirrel.Eq{"course_id": ids},
			squirrel.GtOrEq{"exam_date": r.now()},
		}, "exam_date ASC", 10)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// StudentSummary returns the standing of one student.
func (r *DashboardRepository) StudentSummary(ctx context.Context, studentID int64) (*dto.StudentDashboard, error) {
	d := &dto.StudentDashboard{}
	var err error

	if d.Enrollments, err = r.count(ctx, "enrollments", squirrel.Eq{
		"student_id": studentID,
		"status":     models.SeatHoldingEnrollmentStatuses,
	}); err != nil {
		return nil, err
	}

	if d.Grades, err = r.grades.FindAll(ctx, squirrel.Eq{"student_id": studentID}, "created_at DESC", 0); err != nil {
		return nil, err
	}
	d.AveragePercentage = averagePercentage(d.Grades)

	var rate float64
	err = r.scalar(ctx, &rate, r.sb.Select(
		"COALESCE(ROUND(100.0 * COUNT(*) FILTER (WHERE status IN ('present', 'late')) / NULLIF(COUNT(*), 0), 2), 0)::float8",
	).From("attendance").Where(squirrel.Eq{"student_id": studentID}))
	if err != nil {
		return nil, err
	}
	d.AttendanceRate = rate

	outstanding := squirrel.Eq{"student_id": studentID, "status": models.PaymentStatusPending}
	if d.OutstandingPayments, err = r.count(ctx, "payments", outstanding); err != nil {
		return nil, err
	}
	err = r.scalar(ctx, &d.OutstandingAmount, r.sb.Select("COALESCE(SUM(amount), 0)::float8").
		From("payments").
		Where(outstanding))
	if err != nil {
		return nil, err
	}

	if d.RecentAnnouncements, err = r.recentAnnouncements(ctx, models.AudienceAll, models.AudienceStudents); err != nil {
		return nil, err
	}
	return d, nil
}

func averagePercentage(grades []*models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var total float64
	for _, g := range grades {
		total += g.Percentage
	}
	return grading.Round2(total / float64(len(grades)))
}
