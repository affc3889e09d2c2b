package models

import "time"

// Announcement audiences.
const (
	AudienceAll       = "all"
	AudienceStudents  = "students"
	AudienceLecturers = "lecturers"
	AudienceStaff     = "staff"
)

// Announcement is a notice published to an audience, optionally scoped to a course.
type Announcement struct {
	Base
	AuthorID    int64      `json:"authorId" db:"author_id" validate:"required,gt=0"`
	CourseID    *int64     `json:"courseId,omitempty" db:"course_id" validate:"omitempty,gt=0"`
	Title       string     `json:"title" db:"title" validate:"required,max=200"`
	Body        string     `json:"body" db:"body" validate:"required"`
	Audience    string     `json:"audience" db:"audience" validate:"required,oneof=all students lecturers staff"`
	Priority    string     `json:"priority" db:"priority" validate:"required,oneof=low normal high urgent"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at"`
}

// TicketStatus values.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// SupportTicket is a help request raised by any profile.
type SupportTicket struct {
	Base
	ProfileID int64  `json:"profileId" db:"profile_id" validate:"required,gt=0"`
	Subject   string `json:"subject" db:"subject" validate:"required,max=200"`
	Message   string `json:"message" db:"message" validate:"required"`
	Category  string `json:"category" db:"category" validate:"required,oneof=academic technical financial other"`
	Priority  string `json:"priority" db:"priority" validate:"required,oneof=low normal high urgent"`
	Status    string `json:"status" db:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
}

// CalendarEvent is an entry in the school calendar.
type CalendarEvent struct {
	Base
	CreatedBy   int64     `json:"createdBy" db:"created_by" validate:"required,gt=0"`
	Title       string    `json:"title" db:"title" validate:"required,max=200"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartsAt    time.Time `json:"startsAt" db:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"endsAt" db:"ends_at" validate:"required,gtefield=StartsAt"`
	Category    string    `json:"category" db:"category" validate:"required,oneof=academic holiday exam event meeting"`
}
