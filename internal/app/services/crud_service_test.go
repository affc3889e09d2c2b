package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/refnum"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

func validCourse() *models.Course {
	return &models.Course{
		FacultyID: 1,
		Code:      "CSC201",
		Title:     "Data Structures",
		Credits:   3,
		Capacity:  40,
		Semester:  models.TermFirst,
		Status:    models.CourseStatusActive,
	}
}

func TestCRUDService_CreateRejectsInvalidCapacity(t *testing.T) {
	store := newMemStore[models.Course]()
	svc := NewCRUDService[models.Course]("course", store, validation.New(), Hooks[models.Course]{})

	draft := validCourse()
	draft.Capacity = 0

	_, err := svc.Create(context.Background(), draft)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "capacity must be at least 1", fields["capacity"])
	assert.Zero(t, store.creates, "invalid form must not reach the store")
}

func TestCRUDService_CreateSavesOnceWithSubmittedState(t *testing.T) {
	store := newMemStore[models.Course]()
	svc := NewCRUDService[models.Course]("course", store, validation.New(), Hooks[models.Course]{})

	draft := validCourse()
	created, err := svc.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, 1, store.creates)
	require.Len(t, store.saved, 1)
	assert.Same(t, draft, store.saved[0])
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "CSC201", created.Code)
	assert.Equal(t, 40, created.Capacity)
}

func TestCRUDService_UpdateKeepsIdentity(t *testing.T) {
	store := newMemStore[models.Course]()
	svc := NewCRUDService[models.Course]("course", store, validation.New(), Hooks[models.Course]{})

	created, err := svc.Create(context.Background(), validCourse())
	require.NoError(t, err)

	draft := validCourse()
	draft.Title = "Algorithms"
	updated, err := svc.Update(context.Background(), created.ID, draft)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Algorithms", store.items[created.ID].Title)
	assert.Equal(t, 1, store.updates)
}

func TestCRUDService_UpdateMissingRecord(t *testing.T) {
	store := newMemStore[models.Course]()
	svc := NewCRUDService[models.Course]("course", store, validation.New(), Hooks[models.Course]{})

	_, err := svc.Update(context.Background(), 77, validCourse())

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Zero(t, store.updates)
}

func TestCRUDService_QuizPassingMarks(t *testing.T) {
	store := newMemStore[models.Quiz]()
	svc := NewCRUDService[models.Quiz]("quiz", store, validation.New(), Hooks[models.Quiz]{})

	_, err := svc.Create(context.Background(), &models.Quiz{
		CourseID: 1, Title: "Week 1", DurationMinutes: 20, TotalMarks: 10, PassingMarks: 11,
	})

	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "passingMarks must not exceed totalMarks", fields["passingMarks"])
	assert.Zero(t, store.creates)
}

func TestCRUDService_CalendarEventEndsBeforeStart(t *testing.T) {
	store := newMemStore[models.CalendarEvent]()
	svc := NewCRUDService[models.CalendarEvent]("calendar event", store, validation.New(), Hooks[models.CalendarEvent]{})

	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), &models.CalendarEvent{
		CreatedBy: 1, Title: "Open day", StartsAt: start, EndsAt: start.Add(-time.Hour), Category: "event",
	})

	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "endsAt")
}

func TestGradeHooks_DeriveLetterGrade(t *testing.T) {
	store := newMemStore[models.Grade]()
	svc := NewCRUDService[models.Grade]("grade", store, validation.New(), GradeHooks())

	grade, err := svc.Create(context.Background(), &models.Grade{
		StudentID: 1, CourseID: 2, Score: 45, MaxScore: 50, Term: models.TermFirst,
		Percentage: 12, LetterGrade: "F",
	})

	require.NoError(t, err)
	assert.Equal(t, 90.0, grade.Percentage)
	assert.Equal(t, "A-", grade.LetterGrade)
}

func TestGradeHooks_ScoreAboveMax(t *testing.T) {
	store := newMemStore[models.Grade]()
	svc := NewCRUDService[models.Grade]("grade", store, validation.New(), GradeHooks())

	_, err := svc.Create(context.Background(), &models.Grade{
		StudentID: 1, CourseID: 2, Score: 51, MaxScore: 50, Term: models.TermFirst,
	})

	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "score")
	assert.Zero(t, store.creates)
}

var paymentRef = regexp.MustCompile(`^PAY-\d{6}-[A-Z0-9]{6}$`)

func fixedNow() time.Time { return time.Date(2025, 4, 2, 8, 30, 0, 0, time.UTC) }

func TestPaymentHooks_AssignReferenceAndDefaults(t *testing.T) {
	store := newMemStore[models.Payment]()
	svc := NewCRUDService[models.Payment]("payment", store, validation.New(),
		PaymentHooks(refnum.New(refnum.PaymentPrefix), fixedNow))

	pending, err := svc.Create(context.Background(), &models.Payment{StudentID: 1, Amount: 250, Method: "card"})
	require.NoError(t, err)
	assert.Regexp(t, paymentRef, pending.ReferenceNumber)
	assert.Equal(t, models.PaymentStatusPending, pending.Status)
	assert.Nil(t, pending.PaidAt)

	completed, err := svc.Create(context.Background(), &models.Payment{
		StudentID: 1, Amount: 100, Method: "cash", Status: models.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, completed.PaidAt)
	assert.Equal(t, fixedNow(), *completed.PaidAt)
}

func TestPaymentHooks_UpdateKeepsReference(t *testing.T) {
	store := newMemStore[models.Payment]()
	svc := NewCRUDService[models.Payment]("payment", store, validation.New(),
		PaymentHooks(refnum.New(refnum.PaymentPrefix), fixedNow))

	created, err := svc.Create(context.Background(), &models.Payment{StudentID: 1, Amount: 250, Method: "card"})
	require.NoError(t, err)
	ref := created.ReferenceNumber

	updated, err := svc.Update(context.Background(), created.ID, &models.Payment{
		StudentID: 1, Amount: 250, Method: "card", Status: models.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, ref, updated.ReferenceNumber)
	assert.NotNil(t, updated.PaidAt)
}

func TestPaymentHooks_RejectsNonPositiveAmount(t *testing.T) {
	store := newMemStore[models.Payment]()
	svc := NewCRUDService[models.Payment]("payment", store, validation.New(),
		PaymentHooks(refnum.New(refnum.PaymentPrefix), fixedNow))

	_, err := svc.Create(context.Background(), &models.Payment{StudentID: 1, Amount: 0, Method: "card"})

	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "amount")
}

func TestRefundHooks(t *testing.T) {
	payments := newMemStore[models.Payment]()
	payments.put(&models.Payment{StudentID: 9, Amount: 300, Method: "card", Status: models.PaymentStatusCompleted})

	newSvc := func() (*CRUDService[models.Refund, *models.Refund], *memStore[models.Refund, *models.Refund]) {
		store := newMemStore[models.Refund]()
		return NewCRUDService[models.Refund]("refund", store, validation.New(),
			RefundHooks(payments, refnum.New(refnum.RefundPrefix), fixedNow)), store
	}

	t.Run("fills student and reference", func(t *testing.T) {
		svc, _ := newSvc()
		refund, err := svc.Create(context.Background(), &models.Refund{PaymentID: 1, Amount: 100, Reason: "overpaid"})
		require.NoError(t, err)
		assert.Equal(t, int64(9), refund.StudentID)
		assert.Regexp(t, `^RFD-\d{6}-[A-Z0-9]{6}$`, refund.ReferenceNumber)
		assert.Equal(t, models.RefundStatusRequested, refund.Status)
	})

	t.Run("amount above payment", func(t *testing.T) {
		svc, store := newSvc()
		_, err := svc.Create(context.Background(), &models.Refund{PaymentID: 1, Amount: 301, Reason: "overpaid"})
		fields, ok := validation.AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fields, "amount")
		assert.Zero(t, store.creates)
	})

	t.Run("unknown payment", func(t *testing.T) {
		svc, store := newSvc()
		_, err := svc.Create(context.Background(), &models.Refund{PaymentID: 42, Amount: 10, Reason: "overpaid"})
		fields, ok := validation.AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fields, "paymentId")
		assert.Zero(t, store.creates)
	})
}

func TestEnrollmentHooks_UseCapacityCheck(t *testing.T) {
	store := newMemStore[models.Enrollment]()
	inserter := &mockEnrollmentWriter{store: store}
	svc := NewCRUDService[models.Enrollment]("enrollment", store, validation.New(), EnrollmentHooks(inserter))

	created, err := svc.Create(context.Background(), &models.Enrollment{StudentID: 1, CourseID: 2})

	require.NoError(t, err)
	assert.Equal(t, 1, inserter.calls)
	assert.Zero(t, store.creates, "generic insert must be bypassed")
	assert.Equal(t, int64(100), created.ID)
}

func TestEnrollmentHooks_CourseFull(t *testing.T) {
	store := newMemStore[models.Enrollment]()
	inserter := &mockEnrollmentWriter{store: store, err: apperrors.ErrCourseFull}
	svc := NewCRUDService[models.Enrollment]("enrollment", store, validation.New(), EnrollmentHooks(inserter))

	_, err := svc.Create(context.Background(), &models.Enrollment{StudentID: 1, CourseID: 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
}

func TestEnrollmentHooks_UpdateCapacityCheck(t *testing.T) {
	enrolledAt := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		existing   models.Enrollment
		update     models.Enrollment
		wantChecks int
	}{
		{
			name:       "dropped back to active",
			existing:   models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusDropped},
			update:     models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusActive},
			wantChecks: 1,
		},
		{
			name:       "active moved to another course",
			existing:   models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusActive},
			update:     models.Enrollment{StudentID: 1, CourseID: 99, Status: models.EnrollmentStatusActive},
			wantChecks: 1,
		},
		{
			name:       "pending confirmed on the same course",
			existing:   models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusPending},
			update:     models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusActive},
			wantChecks: 0,
		},
		{
			name:       "active dropped",
			existing:   models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusActive},
			update:     models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusDropped},
			wantChecks: 0,
		},
		{
			name:       "status kept from the stored row",
			existing:   models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusDropped},
			update:     models.Enrollment{StudentID: 1, CourseID: 5},
			wantChecks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore[models.Enrollment]()
			existing := tt.existing
			existing.EnrolledAt = enrolledAt
			store.put(&existing)

			writer := &mockEnrollmentWriter{store: store}
			svc := NewCRUDService[models.Enrollment]("enrollment", store, validation.New(), EnrollmentHooks(writer))

			update := tt.update
			_, err := svc.Update(context.Background(), existing.ID, &update)

			require.NoError(t, err)
			assert.Equal(t, tt.wantChecks, writer.capacityChecks)
			assert.Equal(t, 1, store.updates)
			assert.Equal(t, enrolledAt, writer.last.EnrolledAt)
		})
	}
}

func TestEnrollmentHooks_UpdateCourseFull(t *testing.T) {
	store := newMemStore[models.Enrollment]()
	store.put(&models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusDropped})

	writer := &mockEnrollmentWriter{store: store, err: apperrors.ErrCourseFull}
	svc := NewCRUDService[models.Enrollment]("enrollment", store, validation.New(), EnrollmentHooks(writer))

	_, err := svc.Update(context.Background(), 1, &models.Enrollment{StudentID: 1, CourseID: 2, Status: models.EnrollmentStatusActive})

	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
	assert.Equal(t, 1, writer.capacityChecks)
	assert.Zero(t, store.updates)
}

func TestSupportTicketHooks_DefaultOpen(t *testing.T) {
	store := newMemStore[models.SupportTicket]()
	svc := NewCRUDService[models.SupportTicket]("support ticket", store, validation.New(), SupportTicketHooks())

	ticket, err := svc.Create(context.Background(), &models.SupportTicket{
		ProfileID: 1, Subject: "Portal", Message: "Cannot log in", Category: "technical", Priority: "high",
	})

	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
}
