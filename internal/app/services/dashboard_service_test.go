package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/cache"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

type mockDashboardStore struct {
	adminCalls   int
	studentCalls int
	lastStudent  int64
	lastLecturer int64
}

func (m *mockDashboardStore) AdminSummary(_ context.Context) (*dto.AdminDashboard, error) {
	m.adminCalls++
	return &dto.AdminDashboard{Students: 12, Courses: 3, CollectedAmount: 1500.5}, nil
}

func (m *mockDashboardStore) LecturerSummary(_ context.Context, lecturerID int64) (*dto.LecturerDashboard, error) {
	m.lastLecturer = lecturerID
	return &dto.LecturerDashboard{Assignments: 4}, nil
}

func (m *mockDashboardStore) StudentSummary(_ context.Context, studentID int64) (*dto.StudentDashboard, error) {
	m.studentCalls++
	m.lastStudent = studentID
	return &dto.StudentDashboard{Enrollments: 2, AveragePercentage: 81.25}, nil
}

// failingCache errors on every call.
type failingCache struct{}

func (failingCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("cache down")
}
func (failingCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("cache down")
}
func (failingCache) Delete(context.Context, ...string) error { return errors.New("cache down") }

func TestDashboardService_AdminIsCached(t *testing.T) {
	store := &mockDashboardStore{}
	svc := NewDashboardService(store, &mockStudentLookup{}, &mockLecturerLookup{}, cache.NewMemoryStore(), time.Minute)

	first, err := svc.Admin(context.Background())
	require.NoError(t, err)
	second, err := svc.Admin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, store.adminCalls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1500.5, second.CollectedAmount)
}

func TestDashboardService_CacheFailureFallsBack(t *testing.T) {
	store := &mockDashboardStore{}
	svc := NewDashboardService(store, &mockStudentLookup{}, &mockLecturerLookup{}, failingCache{}, time.Minute)

	for i := 0; i < 2; i++ {
		d, err := svc.Admin(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(12), d.Students)
	}
	assert.Equal(t, 2, store.adminCalls)
}

func TestDashboardService_StudentResolvesRecord(t *testing.T) {
	store := &mockDashboardStore{}
	students := &mockStudentLookup{student: &models.Student{Base: models.Base{ID: 33}, ProfileID: 5}}
	svc := NewDashboardService(store, students, &mockLecturerLookup{}, cache.NewMemoryStore(), time.Minute)

	d, err := svc.Student(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(33), store.lastStudent)
	assert.Equal(t, 81.25, d.AveragePercentage)

	_, err = svc.Student(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, store.studentCalls)
	assert.Equal(t, 1, students.calls)
}

func TestDashboardService_StudentWithoutRecord(t *testing.T) {
	svc := NewDashboardService(&mockDashboardStore{}, &mockStudentLookup{}, &mockLecturerLookup{}, cache.NewMemoryStore(), time.Minute)

	_, err := svc.Student(context.Background(), 5)

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDashboardService_ForSession(t *testing.T) {
	store := &mockDashboardStore{}
	lecturers := &mockLecturerLookup{lecturer: &models.Lecturer{Base: models.Base{ID: 8}}}
	svc := NewDashboardService(store, &mockStudentLookup{}, lecturers, cache.NewMemoryStore(), time.Minute)

	d, err := svc.ForSession(context.Background(), &auth.Session{ProfileID: 2, Role: models.RoleLecturer})
	require.NoError(t, err)
	require.IsType(t, &dto.LecturerDashboard{}, d)
	assert.Equal(t, int64(8), store.lastLecturer)

	_, err = svc.ForSession(context.Background(), &auth.Session{ProfileID: 2, Role: "guest"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ForSession(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestDashboardService_InvalidateAdminOnCourseWrite(t *testing.T) {
	store := &mockDashboardStore{}
	dash := NewDashboardService(store, &mockStudentLookup{}, &mockLecturerLookup{}, cache.NewMemoryStore(), time.Minute)

	courses := NewCRUDService[models.Course]("course", newMemStore[models.Course](), validation.New(), Hooks[models.Course]{})
	courses.OnWrite(dash.InvalidateAdmin)

	ctx := context.Background()
	_, err := dash.Admin(ctx)
	require.NoError(t, err)

	// rejected drafts leave the cache alone
	bad := validCourse()
	bad.Capacity = 0
	_, err = courses.Create(ctx, bad)
	require.Error(t, err)
	_, err = dash.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.adminCalls)

	created, err := courses.Create(ctx, validCourse())
	require.NoError(t, err)
	_, err = dash.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.adminCalls)

	require.NoError(t, courses.Delete(ctx, created.ID))
	_, err = dash.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, store.adminCalls)
}

func TestDashboardService_InvalidateAdminIgnoresCacheErrors(t *testing.T) {
	dash := NewDashboardService(&mockDashboardStore{}, &mockStudentLookup{}, &mockLecturerLookup{}, failingCache{}, time.Minute)

	assert.NotPanics(t, func() { dash.InvalidateAdmin(context.Background()) })
}
