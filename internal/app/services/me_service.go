package services

import (
	"context"

	"github.com/yigit/campusdesk/internal/app/models"
)

// Page is one page of records with the total match count.
type Page[T any] struct {
	Items []*T
	Total int64
}

// MeService serves the caller's own records.
type MeService struct {
	students    StudentLookup
	lecturers   LecturerLookup
	enrollments Store[models.Enrollment]
	grades      Store[models.Grade]
	attendance  Store[models.Attendance]
	payments    Store[models.Payment]
	courses     Store[models.Course]
}

// MeStores groups the stores MeService reads from.
type MeStores struct {
	Students    StudentLookup
	Lecturers   LecturerLookup
	Enrollments Store[models.Enrollment]
	Grades      Store[models.Grade]
	Attendance  Store[models.Attendance]
	Payments    Store[models.Payment]
	Courses     Store[models.Course]
}

// NewMeService creates a new MeService
func NewMeService(stores MeStores) *MeService {
	return &MeService{
		students:    stores.Students,
		lecturers:   stores.Lecturers,
		enrollments: stores.Enrollments,
		grades:      stores.Grades,
		attendance:  stores.Attendance,
		payments:    stores.Payments,
		courses:     stores.Courses,
	}
}

func studentRecords[T any](ctx context.Context, s *MeService, store Store[T], profileID int64, page, size int) (*Page[T], error) {
	student, err := s.students.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	items, total, err := store.ListBy(ctx, "student_id", student.ID, page, size)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Total: total}, nil
}

func (s *MeService) Enrollments(ctx context.Context, profileID int64, page, size int) (*Page[models.Enrollment], error) {
	return studentRecords(ctx, s, s.enrollments, profileID, page, size)
}

func (s *MeService) Grades(ctx context.Context, profileID int64, page, size int) (*Page[models.Grade], error) {
	return studentRecords(ctx, s, s.grades, profileID, page, size)
}

func (s *MeService) Attendance(ctx context.Context, profileID int64, page, size int) (*Page[models.Attendance], error) {
	return studentRecords(ctx, s, s.attendance, profileID, page, size)
}

func (s *MeService) Payments(ctx context.Context, profileID int64, page, size int) (*Page[models.Payment], error) {
	return studentRecords(ctx, s, s.payments, profileID, page, size)
}

// Courses returns the courses taught by the lecturer linked to profileID.
func (s *MeService) Courses(ctx context.Context, profileID int64, page, size int) (*Page[models.Course], error) {
	lecturer, err := s.lecturers.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	items, total, err := s.courses.ListBy(ctx, "lecturer_id", lecturer.ID, page, size)
	if err != nil {
		return nil, err
	}
	return &Page[models.Course]{Items: items, Total: total}, nil
}
