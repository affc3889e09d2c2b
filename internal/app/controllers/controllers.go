package controllers

import (
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/services"
)

// Controllers holds every controller instance.
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	Me        *MeController
	Export    *ExportController
	Material  *MaterialController

	Profiles       Resource
	Faculties      Resource
	Students       Resource
	Lecturers      Resource
	Staff          Resource
	Courses        Resource
	Enrollments    Resource
	Registrations  Resource
	Assignments    Resource
	Materials      Resource
	Quizzes        Resource
	Exams          Resource
	Grades         Resource
	Attendance     Resource
	Payments       Resource
	Refunds        Resource
	TuitionFees    Resource
	Scholarships   Resource
	Announcements  Resource
	SupportTickets Resource
	CalendarEvents Resource
}

// New builds the controllers on top of svc.
func New(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(svc.Auth),
		Dashboard: NewDashboardController(svc.Dashboard),
		Me:        NewMeController(svc.Me),
		Export:    NewExportController(svc.Export),
		Material:  NewMaterialController(svc.MaterialFiles),

		Profiles:       NewResourceController[models.Profile](svc.Profiles),
		Faculties:      NewResourceController[models.Faculty](svc.Faculties),
		Students:       NewResourceController[models.Student](svc.Students),
		Lecturers:      NewResourceController[models.Lecturer](svc.Lecturers),
		Staff:          NewResourceController[models.Staff](svc.Staff),
		Courses:        NewResourceController[models.Course](svc.Courses),
		Enrollments:    NewResourceController[models.Enrollment](svc.Enrollments),
		Registrations:  NewResourceController[models.Registration](svc.Registrations),
		Assignments:    NewResourceController[models.Assignment](svc.Assignments),
		Materials:      NewResourceController[models.Material](svc.Materials),
		Quizzes:        NewResourceController[models.Quiz](svc.Quizzes),
		Exams:          NewResourceController[models.Exam](svc.Exams),
		Grades:         NewResourceController[models.Grade](svc.Grades),
		Attendance:     NewResourceController[models.Attendance](svc.Attendance),
		Payments:       NewResourceController[models.Payment](svc.Payments),
		Refunds:        NewResourceController[models.Refund](svc.Refunds),
		TuitionFees:    NewResourceController[models.TuitionFee](svc.TuitionFees),
		Scholarships:   NewResourceController[models.Scholarship](svc.Scholarships),
		Announcements:  NewResourceController[models.Announcement](svc.Announcements),
		SupportTickets: NewResourceController[models.SupportTicket](svc.SupportTickets),
		CalendarEvents: NewResourceController[models.CalendarEvent](svc.CalendarEvents),
	}
}
