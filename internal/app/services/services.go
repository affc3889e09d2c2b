// Package services holds the business rules that sit between the HTTP
// controllers and the repositories.
package services

import (
	"context"
	"time"

	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/app/repositories"
	"github.com/yigit/campusdesk/internal/cache"
	pkgauth "github.com/yigit/campusdesk/internal/pkg/auth"
	"github.com/yigit/campusdesk/internal/pkg/filestorage"
	"github.com/yigit/campusdesk/internal/pkg/refnum"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// Dependencies are the collaborators services are built from.
type Dependencies struct {
	Repos        *repositories.Repositories
	Cache        cache.Store
	JWT          *pkgauth.JWTService
	Storage      filestorage.FileStorage
	Validator    *validation.Validator
	DashboardTTL time.Duration
}

// Services holds every service instance.
type Services struct {
	Auth          *AuthService
	Dashboard     *DashboardService
	Me            *MeService
	Export        *ExportService
	MaterialFiles *MaterialService

	Profiles       *CRUDService[models.Profile, *models.Profile]
	Faculties      *CRUDService[models.Faculty, *models.Faculty]
	Students       *CRUDService[models.Student, *models.Student]
	Lecturers      *CRUDService[models.Lecturer, *models.Lecturer]
	Staff          *CRUDService[models.Staff, *models.Staff]
	Courses        *CRUDService[models.Course, *models.Course]
	Enrollments    *CRUDService[models.Enrollment, *models.Enrollment]
	Registrations  *CRUDService[models.Registration, *models.Registration]
	Assignments    *CRUDService[models.Assignment, *models.Assignment]
	Materials      *CRUDService[models.Material, *models.Material]
	Quizzes        *CRUDService[models.Quiz, *models.Quiz]
	Exams          *CRUDService[models.Exam, *models.Exam]
	Grades         *CRUDService[models.Grade, *models.Grade]
	Attendance     *CRUDService[models.Attendance, *models.Attendance]
	Payments       *CRUDService[models.Payment, *models.Payment]
	Refunds        *CRUDService[models.Refund, *models.Refund]
	TuitionFees    *CRUDService[models.TuitionFee, *models.TuitionFee]
	Scholarships   *CRUDService[models.Scholarship, *models.Scholarship]
	Announcements  *CRUDService[models.Announcement, *models.Announcement]
	SupportTickets *CRUDService[models.SupportTicket, *models.SupportTicket]
	CalendarEvents *CRUDService[models.CalendarEvent, *models.CalendarEvent]
}

// New wires every service from deps.
func New(deps Dependencies) *Services {
	r := deps.Repos
	v := deps.Validator
	now := time.Now

	svc := &Services{
		Auth:      NewAuthService(r.Profiles, r.Tokens, deps.Cache, deps.JWT, v),
		Dashboard: NewDashboardService(r.Dashboard, r.Students, r.Lecturers, deps.Cache, deps.DashboardTTL),
		Me: NewMeService(MeStores{
			Students:    r.Students,
			Lecturers:   r.Lecturers,
			Enrollments: r.Enrollments,
			Grades:      r.Grades,
			Attendance:  r.Attendance,
			Payments:    r.Payments,
			Courses:     r.Courses,
		}),
		Export:        NewExportService(r.Reports, r.Courses),
		MaterialFiles: NewMaterialService(r.Materials, deps.Storage),

		Profiles:       NewCRUDService[models.Profile]("profile", r.Profiles, v, Hooks[models.Profile]{}),
		Faculties:      NewCRUDService[models.Faculty]("faculty", r.Faculties, v, Hooks[models.Faculty]{}),
		Students:       NewCRUDService[models.Student]("student", r.Students, v, Hooks[models.Student]{}),
		Lecturers:      NewCRUDService[models.Lecturer]("lecturer", r.Lecturers, v, Hooks[models.Lecturer]{}),
		Staff:          NewCRUDService[models.Staff]("staff", r.Staff, v, Hooks[models.Staff]{}),
		Courses:        NewCRUDService[models.Course]("course", r.Courses, v, Hooks[models.Course]{}),
		Enrollments:    NewCRUDService[models.Enrollment]("enrollment", r.Enrollments, v, EnrollmentHooks(r.Enrollments)),
		Registrations:  NewCRUDService[models.Registration]("registration", r.Registrations, v, Hooks[models.Registration]{}),
		Assignments:    NewCRUDService[models.Assignment]("assignment", r.Assignments, v, Hooks[models.Assignment]{}),
		Materials:      NewCRUDService[models.Material]("material", r.Materials, v, Hooks[models.Material]{}),
		Quizzes:        NewCRUDService[models.Quiz]("quiz", r.Quizzes, v, Hooks[models.Quiz]{}),
		Exams:          NewCRUDService[models.Exam]("exam", r.Exams, v, Hooks[models.Exam]{}),
		Grades:         NewCRUDService[models.Grade]("grade", r.Grades, v, GradeHooks()),
		Attendance:     NewCRUDService[models.Attendance]("attendance", r.Attendance, v, Hooks[models.Attendance]{}),
		Payments:       NewCRUDService[models.Payment]("payment", r.Payments, v, PaymentHooks(refnum.New(refnum.PaymentPrefix), now)),
		Refunds:        NewCRUDService[models.Refund]("refund", r.Refunds, v, RefundHooks(r.Payments, refnum.New(refnum.RefundPrefix), now)),
		TuitionFees:    NewCRUDService[models.TuitionFee]("tuition fee", r.TuitionFees, v, Hooks[models.TuitionFee]{}),
		Scholarships:   NewCRUDService[models.Scholarship]("scholarship", r.Scholarships, v, Hooks[models.Scholarship]{}),
		Announcements:  NewCRUDService[models.Announcement]("announcement", r.Announcements, v, Hooks[models.Announcement]{}),
		SupportTickets: NewCRUDService[models.SupportTicket]("support ticket", r.SupportTickets, v, SupportTicketHooks()),
		CalendarEvents: NewCRUDService[models.CalendarEvent]("calendar event", r.CalendarEvents, v, Hooks[models.CalendarEvent]{}),
	}

	// Writes to anything the admin dashboard counts drop its cached copy.
	for _, src := range []writeNotifier{
		svc.Students, svc.Lecturers, svc.Courses, svc.Staff,
		svc.Payments, svc.SupportTickets, svc.Announcements,
	} {
		src.OnWrite(svc.Dashboard.InvalidateAdmin)
	}

	return svc
}

type writeNotifier interface {
	OnWrite(fn func(context.Context))
}
