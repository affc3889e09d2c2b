package dto

import "github.com/yigit/campusdesk/internal/app/models"

// AdminDashboard aggregates school-wide counts.
type AdminDashboard struct {
	Students            int64                  `json:"students"`
	Lecturers           int64                  `json:"lecturers"`
	Courses             int64                  `json:"courses"`
	Staff               int64                  `json:"staff"`
	PendingPayments     int64                  `json:"pendingPayments"`
	OpenTickets         int64                  `json:"openTickets"`
	CollectedAmount     float64                `json:"collectedAmount"`
	RecentAnnouncements []*models.Announcement `json:"recentAnnouncements"`
}

// LecturerDashboard summarises a lecturer's teaching load.
type LecturerDashboard struct {
	Courses       []*models.Course `json:"courses"`
	Assignments   int64            `json:"assignments"`
	Materials     int64            `json:"materials"`
	UpcomingExams []*models.Exam   `json:"upcomingExams"`
}

// StudentDashboard summarises a student's standing.
type StudentDashboard struct {
	Enrollments         int64                  `json:"enrollments"`
	Grades              []*models.Grade        `json:"grades"`
	AveragePercentage   float64                `json:"averagePercentage"`
	AttendanceRate      float64                `json:"attendanceRate"`
	OutstandingPayments int64                  `json:"outstandingPayments"`
	OutstandingAmount   float64                `json:"outstandingAmount"`
	RecentAnnouncements []*models.Announcement `json:"recentAnnouncements"`
}
