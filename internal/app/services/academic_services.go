package services

import (
	"context"
	"time"

	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/grading"
	"github.com/yigit/campusdesk/internal/pkg/refnum"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// GradeHooks derives percentage and letter grade from the score.
func GradeHooks() Hooks[models.Grade] {
	return Hooks[models.Grade]{
		BeforeSave: func(_ context.Context, g, _ *models.Grade) error {
			g.Percentage, g.LetterGrade = grading.Compute(g.Score, g.MaxScore)
			return nil
		},
	}
}

// PaymentHooks assigns reference numbers and settles the paid timestamp.
func PaymentHooks(refs *refnum.Generator, now func() time.Time) Hooks[models.Payment] {
	return Hooks[models.Payment]{
		BeforeSave: func(_ context.Context, p, existing *models.Payment) error {
			if p.ReferenceNumber == "" {
				if existing != nil {
					p.ReferenceNumber = existing.ReferenceNumber
				} else {
					p.ReferenceNumber = refs.Next()
				}
			}
			if p.Status == "" {
				p.Status = models.PaymentStatusPending
				if existing != nil {
					p.Status = existing.Status
				}
			}
			if p.PaidAt == nil && existing != nil {
				p.PaidAt = existing.PaidAt
			}
			if p.Status == models.PaymentStatusCompleted && p.PaidAt == nil {
				paidAt := now().UTC()
				p.PaidAt = &paidAt
			}
			return nil
		},
	}
}

// PaymentLookup loads the payment a refund is raised against.
type PaymentLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
}

// RefundHooks checks the refund against its payment and assigns a reference number.
func RefundHooks(payments PaymentLookup, refs *refnum.Generator, now func() time.Time) Hooks[models.Refund] {
	return Hooks[models.Refund]{
		BeforeSave: func(ctx context.Context, r, existing *models.Refund) error {
			payment, err := payments.GetByID(ctx, r.PaymentID)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrResourceNotFound) {
					return validation.FieldErrors{"paymentId": "paymentId does not match a payment"}
				}
				return err
			}
			if r.Amount > payment.Amount {
				return validation.FieldErrors{"amount": "amount must not exceed the payment amount"}
			}
			r.StudentID = payment.StudentID

			if r.ReferenceNumber == "" {
				if existing != nil {
					r.ReferenceNumber = existing.ReferenceNumber
				} else {
					r.ReferenceNumber = refs.Next()
				}
			}
			if r.Status == "" {
				r.Status = models.RefundStatusRequested
				if existing != nil {
					r.Status = existing.Status
				}
			}
			if r.ProcessedAt == nil && existing != nil {
				r.ProcessedAt = existing.ProcessedAt
			}
			if r.Status == models.RefundStatusProcessed && r.ProcessedAt == nil {
				processedAt := now().UTC()
				r.ProcessedAt = &processedAt
			}
			return nil
		},
	}
}

// EnrollmentWriter performs capacity-checked writes.
type EnrollmentWriter interface {
	CreateWithinCapacity(ctx context.Context, enrollment *models.Enrollment) error
	UpdateWithinCapacity(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
}

// EnrollmentHooks routes creates through the capacity check, and updates too
// whenever the enrollment starts holding a seat or moves to another course.
func EnrollmentHooks(enrollments EnrollmentWriter) Hooks[models.Enrollment] {
	return Hooks[models.Enrollment]{
		BeforeSave: func(_ context.Context, e, existing *models.Enrollment) error {
			if existing == nil {
				return nil
			}
			if e.Status == "" {
				e.Status = existing.Status
			}
			if e.EnrolledAt.IsZero() {
				e.EnrolledAt = existing.EnrolledAt
			}
			return nil
		},
		Insert: enrollments.CreateWithinCapacity,
		Update: func(ctx context.Context, e, existing *models.Enrollment) error {
			takesSeat := models.HoldsSeat(e.Status) &&
				(!models.HoldsSeat(existing.Status) || e.CourseID != existing.CourseID)
			if takesSeat {
				return enrollments.UpdateWithinCapacity(ctx, e)
			}
			return enrollments.Update(ctx, e)
		},
	}
}

// SupportTicketHooks opens new tickets by default.
func SupportTicketHooks() Hooks[models.SupportTicket] {
	return Hooks[models.SupportTicket]{
		BeforeSave: func(_ context.Context, t, existing *models.SupportTicket) error {
			if t.Status != "" {
				return nil
			}
			t.Status = models.TicketStatusOpen
			if existing != nil {
				t.Status = existing.Status
			}
			return nil
		},
	}
}
