package models

import "time"

// Assignment is coursework set by a lecturer.
type Assignment struct {
	Base
	CourseID    int64     `json:"courseId" db:"course_id" validate:"required,gt=0"`
	LecturerID  int64     `json:"lecturerId" db:"lecturer_id" validate:"required,gt=0"`
	Title       string    `json:"title" db:"title" validate:"required,max=200"`
	Description *string   `json:"description,omitempty" db:"description"`
	DueDate     time.Time `json:"dueDate" db:"due_date" validate:"required"`
	MaxScore    float64   `json:"maxScore" db:"max_score" validate:"gt=0"`
}

// MaterialKind values.
const (
	MaterialKindDocument = "document"
	MaterialKindVideo    = "video"
	MaterialKindLink     = "link"
	MaterialKindSlides   = "slides"
)

// Material is a learning resource attached to a course.
type Material struct {
	Base
	CourseID    int64   `json:"courseId" db:"course_id" validate:"required,gt=0"`
	LecturerID  int64   `json:"lecturerId" db:"lecturer_id" validate:"required,gt=0"`
	Title       string  `json:"title" db:"title" validate:"required,max=200"`
	Kind        string  `json:"kind" db:"kind" validate:"required,oneof=document video link slides"`
	Description *string `json:"description,omitempty" db:"description"`
	FileURL     *string `json:"fileUrl,omitempty" db:"file_url" validate:"omitempty,max=500"`
}

// Quiz is a short timed assessment.
type Quiz struct {
	Base
	CourseID        int64      `json:"courseId" db:"course_id" validate:"required,gt=0"`
	Title           string     `json:"title" db:"title" validate:"required,max=200"`
	DurationMinutes int        `json:"durationMinutes" db:"duration_minutes" validate:"min=1,max=600"`
	TotalMarks      int        `json:"totalMarks" db:"total_marks" validate:"min=1"`
	PassingMarks    int        `json:"passingMarks" db:"passing_marks" validate:"gte=0,ltefield=TotalMarks"`
	OpensAt         *time.Time `json:"opensAt,omitempty" db:"opens_at"`
}

// Exam is a scheduled examination for a course.
type Exam struct {
	Base
	CourseID        int64     `json:"courseId" db:"course_id" validate:"required,gt=0"`
	Title           string    `json:"title" db:"title" validate:"required,max=200"`
	ExamDate        time.Time `json:"examDate" db:"exam_date" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" db:"duration_minutes" validate:"min=1,max=600"`
	TotalMarks      int       `json:"totalMarks" db:"total_marks" validate:"min=1"`
	PassingMarks    int       `json:"passingMarks" db:"passing_marks" validate:"gte=0,ltefield=TotalMarks"`
	Venue           *string   `json:"venue,omitempty" db:"venue" validate:"omitempty,max=100"`
}

// Grade is a student's result in a course. Percentage and LetterGrade are derived.
type Grade struct {
	Base
	StudentID   int64   `json:"studentId" db:"student_id" validate:"required,gt=0"`
	CourseID    int64   `json:"courseId" db:"course_id" validate:"required,gt=0"`
	Score       float64 `json:"score" db:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore    float64 `json:"maxScore" db:"max_score" validate:"gt=0"`
	Percentage  float64 `json:"percentage" db:"percentage"`
	LetterGrade string  `json:"letterGrade" db:"letter_grade"`
	Term        Term    `json:"term" db:"term" validate:"required,oneof=first second summer"`
	Remarks     *string `json:"remarks,omitempty" db:"remarks"`
}

// AttendanceStatus values.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance records a student's presence at one course session.
type Attendance struct {
	Base
	StudentID   int64     `json:"studentId" db:"student_id" validate:"required,gt=0"`
	CourseID    int64     `json:"courseId" db:"course_id" validate:"required,gt=0"`
	SessionDate time.Time `json:"sessionDate" db:"session_date" validate:"required"`
	Status      string    `json:"status" db:"status" validate:"required,oneof=present absent late excused"`
	Note        *string   `json:"note,omitempty" db:"note"`
}

// GradeReportRow is a grade joined with the student it belongs to.
type GradeReportRow struct {
	StudentNumber string
	StudentName   string
	Score         float64
	MaxScore      float64
	Percentage    float64
	LetterGrade   string
	Term          Term
}
