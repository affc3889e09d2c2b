package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/campusdesk/internal/app/auth"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/models/dto"
	"github.com/yigit/campusdesk/internal/cache"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/logger"
)

// DashboardStore computes dashboard aggregates.
type DashboardStore interface {
	AdminSummary(ctx context.Context) (*dto.AdminDashboard, error)
	LecturerSummary(ctx context.Context, lecturerID int64) (*dto.LecturerDashboard, error)
	StudentSummary(ctx context.Context, studentID int64) (*dto.StudentDashboard, error)
}

// StudentLookup resolves the student record of a profile.
type StudentLookup interface {
	GetByProfileID(ctx context.Context, profileID int64) (*models.Student, error)
}

// LecturerLookup resolves the lecturer record of a profile.
type LecturerLookup interface {
	GetByProfileID(ctx context.Context, profileID int64) (*models.Lecturer, error)
}

// DashboardService serves per-role dashboards through a TTL cache.
type DashboardService struct {
	store     DashboardStore
	students  StudentLookup
	lecturers LecturerLookup
	cache     cache.Cache
	ttl       time.Duration
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(store DashboardStore, students StudentLookup, lecturers LecturerLookup, c cache.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{
		store:     store,
		students:  students,
		lecturers: lecturers,
		cache:     c,
		ttl:       ttl,
	}
}

// cached serves key from the cache or computes and stores it. Cache errors
// are logged and never fail the request.
func cached[T any](ctx context.Context, s *DashboardService, key string, compute func(context.Context) (*T, error)) (*T, error) {
	log := logger.FromContext(ctx)

	var hit T
	ok, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Dashboard cache read failed")
	}
	if ok {
		return &hit, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Dashboard cache write failed")
	}
	return value, nil
}

const adminDashboardKey = "dashboard:admin"

// Admin returns the school-wide dashboard.
func (s *DashboardService) Admin(ctx context.Context) (*dto.AdminDashboard, error) {
	return cached(ctx, s, adminDashboardKey, s.store.AdminSummary)
}

// InvalidateAdmin drops the cached school-wide dashboard. Lecturer and
// student dashboards still expire by TTL only.
func (s *DashboardService) InvalidateAdmin(ctx context.Context) {
	if err := s.cache.Delete(ctx, adminDashboardKey); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", adminDashboardKey).Msg("Dashboard cache invalidation failed")
	}
}

// Lecturer returns the dashboard of the lecturer linked to profileID.
func (s *DashboardService) Lecturer(ctx context.Context, profileID int64) (*dto.LecturerDashboard, error) {
	key := fmt.Sprintf("dashboard:lecturer:%d", profileID)
	return cached(ctx, s, key, func(ctx context.Context) (*dto.LecturerDashboard, error) {
		lecturer, err := s.lecturers.GetByProfileID(ctx, profileID)
		if err != nil {
			return nil, err
		}
		return s.store.LecturerSummary(ctx, lecturer.ID)
	})
}

// Student returns the dashboard of the student linked to profileID.
func (s *DashboardService) Student(ctx context.Context, profileID int64) (*dto.StudentDashboard, error) {
	key := fmt.Sprintf("dashboard:student:%d", profileID)
	return cached(ctx, s, key, func(ctx context.Context) (*dto.StudentDashboard, error) {
		student, err := s.students.GetByProfileID(ctx, profileID)
		if err != nil {
			return nil, err
		}
		return s.store.StudentSummary(ctx, student.ID)
	})
}

// ForSession returns the dashboard matching the session's role.
func (s *DashboardService) ForSession(ctx context.Context, session *auth.Session) (any, error) {
	if session == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	switch session.Role {
	case models.RoleAdmin:
		return s.Admin(ctx)
	case models.RoleLecturer:
		return s.Lecturer(ctx, session.ProfileID)
	case models.RoleStudent:
		return s.Student(ctx, session.ProfileID)
	default:
		return nil, apperrors.NewForbiddenError("no dashboard for role " + string(session.Role))
	}
}
