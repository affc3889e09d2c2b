package services

import (
	"context"
	"time"

	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
)

// ── in-memory Store ──

type memStore[T any, P models.Pointer[T]] struct {
	items   map[int64]*T
	nextID  int64
	creates int
	updates int
	saved   []*T
	err     error
}

func newMemStore[T any, P models.Pointer[T]]() *memStore[T, P] {
	return &memStore[T, P]{items: make(map[int64]*T)}
}

func (m *memStore[T, P]) put(item *T) {
	m.nextID++
	P(item).Meta().ID = m.nextID
	m.items[m.nextID] = item
}

func (m *memStore[T, P]) List(_ context.Context, _, _ int) ([]*T, int64, error) {
	out := make([]*T, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, int64(len(out)), m.err
}

func (m *memStore[T, P]) GetByID(_ context.Context, id int64) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	if it, ok := m.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, apperrors.NewResourceNotFoundError("record not found")
}

func (m *memStore[T, P]) ListBy(_ context.Context, _ string, _ int64, _, _ int) ([]*T, int64, error) {
	return m.List(context.Background(), 1, 20)
}

func (m *memStore[T, P]) Create(_ context.Context, item *T) error {
	m.creates++
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, item)
	m.put(item)
	P(item).Meta().CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

func (m *memStore[T, P]) Update(_ context.Context, item *T) error {
	m.updates++
	if m.err != nil {
		return m.err
	}
	id := P(item).Meta().ID
	if _, ok := m.items[id]; !ok {
		return apperrors.NewResourceNotFoundError("record not found")
	}
	m.saved = append(m.saved, item)
	m.items[id] = item
	return nil
}

func (m *memStore[T, P]) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return apperrors.NewResourceNotFoundError("record not found")
	}
	delete(m.items, id)
	return nil
}

// ── lookups ──

type mockStudentLookup struct {
	student *models.Student
	calls   int
}

func (m *mockStudentLookup) GetByProfileID(_ context.Context, _ int64) (*models.Student, error) {
	m.calls++
	if m.student == nil {
		return nil, apperrors.ErrNoStudentRecord
	}
	return m.student, nil
}

type mockLecturerLookup struct {
	lecturer *models.Lecturer
}

func (m *mockLecturerLookup) GetByProfileID(_ context.Context, _ int64) (*models.Lecturer, error) {
	if m.lecturer == nil {
		return nil, apperrors.ErrNoLecturerRecord
	}
	return m.lecturer, nil
}

type mockEnrollmentWriter struct {
	store          *memStore[models.Enrollment, *models.Enrollment]
	err            error
	calls          int
	capacityChecks int
	last           *models.Enrollment
}

func (m *mockEnrollmentWriter) CreateWithinCapacity(_ context.Context, e *models.Enrollment) error {
	m.calls++
	m.last = e
	if m.err != nil {
		return m.err
	}
	e.ID = 100
	return nil
}

func (m *mockEnrollmentWriter) UpdateWithinCapacity(ctx context.Context, e *models.Enrollment) error {
	m.capacityChecks++
	m.last = e
	if m.err != nil {
		return m.err
	}
	return m.store.Update(ctx, e)
}

func (m *mockEnrollmentWriter) Update(ctx context.Context, e *models.Enrollment) error {
	m.last = e
	return m.store.Update(ctx, e)
}
