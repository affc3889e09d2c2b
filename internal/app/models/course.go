package models

import "time"

// CourseStatus values.
const (
	CourseStatusDraft    = "draft"
	CourseStatusActive   = "active"
	CourseStatusArchived = "archived"
)

// Course is a course offered by a faculty and taught by a lecturer.
type Course struct {
	Base
	FacultyID   int64   `json:"facultyId" db:"faculty_id" validate:"required,gt=0"`
	LecturerID  *int64  `json:"lecturerId,omitempty" db:"lecturer_id" validate:"omitempty,gt=0"`
	Code        string  `json:"code" db:"code" validate:"required,max=20" example:"CSC201"`
	Title       string  `json:"title" db:"title" validate:"required,min=2,max=200" example:"Data Structures"`
	Description *string `json:"description,omitempty" db:"description"`
	Credits     int     `json:"credits" db:"credits" validate:"min=1,max=12" example:"3"`
	Capacity    int     `json:"capacity" db:"capacity" validate:"min=1" example:"60"`
	Semester    Term    `json:"semester" db:"semester" validate:"required,oneof=first second summer"`
	Status      string  `json:"status" db:"status" validate:"required,oneof=draft active archived"`
}

// EnrollmentStatus values.
const (
	EnrollmentStatusPending   = "pending"
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusDropped   = "dropped"
)

// SeatHoldingEnrollmentStatuses are the statuses that count against course capacity.
var SeatHoldingEnrollmentStatuses = []string{EnrollmentStatusPending, EnrollmentStatusActive}

// HoldsSeat reports whether an enrollment in status counts against capacity.
func HoldsSeat(status string) bool {
	for _, s := range SeatHoldingEnrollmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Enrollment links a student to a course.
type Enrollment struct {
	Base
	StudentID  int64     `json:"studentId" db:"student_id" validate:"required,gt=0"`
	CourseID   int64     `json:"courseId" db:"course_id" validate:"required,gt=0"`
	Status     string    `json:"status" db:"status" validate:"omitempty,oneof=pending active completed dropped"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}

// Registration is a student's request to take a course in a term.
type Registration struct {
	Base
	StudentID int64  `json:"studentId" db:"student_id" validate:"required,gt=0"`
	CourseID  int64  `json:"courseId" db:"course_id" validate:"required,gt=0"`
	Term      Term   `json:"term" db:"term" validate:"required,oneof=first second summer"`
	Status    string `json:"status" db:"status" validate:"required,oneof=pending approved rejected"`
}
