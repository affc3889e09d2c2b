package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
)

// StudentRepository adds profile lookups to the student table.
type StudentRepository struct {
	*Table[models.Student, *models.Student]
}

// GetByProfileID returns the student record linked to a profile.
func (r *StudentRepository) GetByProfileID(ctx context.Context, profileID int64) (*models.Student, error) {
	s, err := r.FindOne(ctx, squirrel.Eq{"profile_id": profileID})
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrNoStudentRecord
	}
	return s, err
}

// LecturerRepository adds profile lookups to the lecturer table.
type LecturerRepository struct {
	*Table[models.Lecturer, *models.Lecturer]
}

// GetByProfileID returns the lecturer record linked to a profile.
func (r *LecturerRepository) GetByProfileID(ctx context.Context, profileID int64) (*models.Lecturer, error) {
	l, err := r.FindOne(ctx, squirrel.Eq{"profile_id": profileID})
	if apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, apperrors.ErrNoLecturerRecord
	}
	return l, err
}

// Repositories holds all the repository instances
type Repositories struct {
	Profiles       *ProfileRepository
	Tokens         *TokenRepository
	Faculties      *Table[models.Faculty, *models.Faculty]
	Students       *StudentRepository
	Lecturers      *LecturerRepository
	Staff          *Table[models.Staff, *models.Staff]
	Courses        *Table[models.Course, *models.Course]
	Enrollments    *EnrollmentRepository
	Registrations  *Table[models.Registration, *models.Registration]
	Assignments    *Table[models.Assignment, *models.Assignment]
	Materials      *Table[models.Material, *models.Material]
	Quizzes        *Table[models.Quiz, *models.Quiz]
	Exams          *Table[models.Exam, *models.Exam]
	Grades         *Table[models.Grade, *models.Grade]
	Attendance     *Table[models.Attendance, *models.Attendance]
	Payments       *Table[models.Payment, *models.Payment]
	Refunds        *Table[models.Refund, *models.Refund]
	TuitionFees    *Table[models.TuitionFee, *models.TuitionFee]
	Scholarships   *Table[models.Scholarship, *models.Scholarship]
	Announcements  *Table[models.Announcement, *models.Announcement]
	SupportTickets *Table[models.SupportTicket, *models.SupportTicket]
	CalendarEvents *Table[models.CalendarEvent, *models.CalendarEvent]
	Reports        *ReportRepository
	Dashboard      *DashboardRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn Conn) *Repositories {
	return &Repositories{
		Profiles:       NewProfileRepository(conn),
		Tokens:         NewTokenRepository(conn),
		Faculties:      NewTable[models.Faculty](conn, facultySpec()),
		Students:       &StudentRepository{NewTable[models.Student](conn, studentSpec())},
		Lecturers:      &LecturerRepository{NewTable[models.Lecturer](conn, lecturerSpec())},
		Staff:          NewTable[models.Staff](conn, staffSpec()),
		Courses:        NewTable[models.Course](conn, courseSpec()),
		Enrollments:    NewEnrollmentRepository(conn),
		Registrations:  NewTable[models.Registration](conn, registrationSpec()),
		Assignments:    NewTable[models.Assignment](conn, assignmentSpec()),
		Materials:      NewTable[models.Material](conn, materialSpec()),
		Quizzes:        NewTable[models.Quiz](conn, quizSpec()),
		Exams:          NewTable[models.Exam](conn, examSpec()),
		Grades:         NewTable[models.Grade](conn, gradeSpec()),
		Attendance:     NewTable[models.Attendance](conn, attendanceSpec()),
		Payments:       NewTable[models.Payment](conn, paymentSpec()),
		Refunds:        NewTable[models.Refund](conn, refundSpec()),
		TuitionFees:    NewTable[models.TuitionFee](conn, tuitionFeeSpec()),
		Scholarships:   NewTable[models.Scholarship](conn, scholarshipSpec()),
		Announcements:  NewTable[models.Announcement](conn, announcementSpec()),
		SupportTickets: NewTable[models.SupportTicket](conn, supportTicketSpec()),
		CalendarEvents: NewTable[models.CalendarEvent](conn, calendarEventSpec()),
		Reports:        NewReportRepository(conn),
		Dashboard:      NewDashboardRepository(conn),
	}
}
