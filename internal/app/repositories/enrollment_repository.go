package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/db"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/logger"
)

// Conn is a DBTX that can also open transactions.
type Conn interface {
	DBTX
	db.TxBeginner
}

// EnrollmentRepository adds capacity-checked inserts to the enrollment table.
type EnrollmentRepository struct {
	*Table[models.Enrollment, *models.Enrollment]
	conn Conn
	now  func() time.Time
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(conn Conn) *EnrollmentRepository {
	return &EnrollmentRepository{
		Table: NewTable[models.Enrollment](conn, enrollmentSpec()),
		conn:  conn,
		now:   time.Now,
	}
}

// CreateWithinCapacity inserts the enrollment unless the course's seat-holding
// enrollments have already reached its capacity. The course row is locked for
// the duration of the check so concurrent enrollments serialise per course.
func (r *EnrollmentRepository) CreateWithinCapacity(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusActive
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = r.now().UTC()
	}

	return db.WithTransaction(ctx, r.conn, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.reserveSeat(ctx, tx, enrollment); err != nil {
			return err
		}
		return alreadyEnrolled(r.WithTx(tx).Create(ctx, enrollment))
	})
}

// UpdateWithinCapacity overwrites the enrollment under the same course lock and
// seat count as CreateWithinCapacity. The row being updated never counts
// against its own seat.
func (r *EnrollmentRepository) UpdateWithinCapacity(ctx context.Context, enrollment *models.Enrollment) error {
	return db.WithTransaction(ctx, r.conn, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.reserveSeat(ctx, tx, enrollment); err != nil {
			return err
		}
		return alreadyEnrolled(r.WithTx(tx).Update(ctx, enrollment))
	})
}

// reserveSeat locks the course row and fails with ErrCourseFull when a
// seat-holding enrollment would exceed its capacity.
func (r *EnrollmentRepository) reserveSeat(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error {
	lockSQL, lockArgs, err := r.sb.Select("capacity").
		From("courses").
		Where(squirrel.Eq{"id": enrollment.CourseID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course lock query: %w", err)
	}

	var capacity int
	if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequestError("course does not exist")
		}
		return fmt.Errorf("error locking course: %w", err)
	}

	if !models.HoldsSeat(enrollment.Status) {
		return nil
	}

	pred := squirrel.And{squirrel.Eq{
		"course_id": enrollment.CourseID,
		"status":    models.SeatHoldingEnrollmentStatuses,
	}}
	if enrollment.ID > 0 {
		pred = append(pred, squirrel.NotEq{"id": enrollment.ID})
	}

	taken, err := r.WithTx(tx).Count(ctx, pred)
	if err != nil {
		return err
	}
	if taken >= int64(capacity) {
		logger.FromContext(ctx).Info().
			Int64("courseID", enrollment.CourseID).
			Int("capacity", capacity).
			Msg("Enrollment refused, course is full")
		return apperrors.ErrCourseFull
	}
	return nil
}

func alreadyEnrolled(err error) error {
	if err != nil && apperrors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return apperrors.ErrAlreadyEnrolled
	}
	return err
}
