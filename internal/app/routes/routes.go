package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campusdesk/internal/app/controllers"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/middleware"
)

var (
	everyone      = models.Roles
	adminOnly     = []models.Role{models.RoleAdmin}
	teachingStaff = []models.Role{models.RoleAdmin, models.RoleLecturer}
)

// Access lists the roles allowed to read and write a resource. Create
// overrides Write for POST when set.
type Access struct {
	Read   []models.Role
	Write  []models.Role
	Create []models.Role
	// NoCreate hides POST; the resource is created elsewhere.
	NoCreate bool
}

// resourceRoute binds a CRUD resource to its path and access policy.
type resourceRoute struct {
	path     string
	resource controllers.Resource
	access   Access
}

func resourceRoutes(c *controllers.Controllers) []resourceRoute {
	return []resourceRoute{
		{"/profiles", c.Profiles, Access{Read: adminOnly, Write: adminOnly, NoCreate: true}},
		{"/faculties", c.Faculties, Access{Read: everyone, Write: adminOnly}},
		{"/students", c.Students, Access{Read: teachingStaff, Write: adminOnly}},
		{"/lecturers", c.Lecturers, Access{Read: everyone, Write: adminOnly}},
		{"/staff", c.Staff, Access{Read: adminOnly, Write: adminOnly}},
		{"/courses", c.Courses, Access{Read: everyone, Write: adminOnly}},
		{"/enrollments", c.Enrollments, Access{Read: teachingStaff, Write: adminOnly}},
		{"/registrations", c.Registrations, Access{Read: teachingStaff, Write: adminOnly}},
		{"/assignments", c.Assignments, Access{Read: everyone, Write: teachingStaff}},
		{"/materials", c.Materials, Access{Read: everyone, Write: teachingStaff}},
		{"/quizzes", c.Quizzes, Access{Read: everyone, Write: teachingStaff}},
		{"/exams", c.Exams, Access{Read: everyone, Write: teachingStaff}},
		{"/grades", c.Grades, Access{Read: teachingStaff, Write: teachingStaff}},
		{"/attendance", c.Attendance, Access{Read: teachingStaff, Write: teachingStaff}},
		{"/payments", c.Payments, Access{Read: adminOnly, Write: adminOnly}},
		{"/refunds", c.Refunds, Access{Read: adminOnly, Write: adminOnly}},
		{"/tuition-fees", c.TuitionFees, Access{Read: everyone, Write: adminOnly}},
		{"/scholarships", c.Scholarships, Access{Read: adminOnly, Write: adminOnly}},
		{"/announcements", c.Announcements, Access{Read: everyone, Write: teachingStaff}},
		{"/support-tickets", c.SupportTickets, Access{Read: adminOnly, Write: adminOnly, Create: everyone}},
		{"/calendar-events", c.CalendarEvents, Access{Read: everyone, Write: adminOnly}},
	}
}

// mountResource registers the CRUD handlers of one resource.
func mountResource(rg *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, r resourceRoute) {
	g := rg.Group(r.path)

	read := authMiddleware.RoleRequired(r.access.Read...)
	write := authMiddleware.RoleRequired(r.access.Write...)

	g.GET("", read, r.resource.List)
	g.GET("/by/:column/:value", read, r.resource.ListBy)
	g.GET("/:id", read, r.resource.GetByID)

	if !r.access.NoCreate {
		create := write
		if len(r.access.Create) > 0 {
			create = authMiddleware.RoleRequired(r.access.Create...)
		}
		g.POST("", create, r.resource.Create)
	}
	g.PUT("/:id", write, r.resource.Update)
	g.DELETE("/:id", write, r.resource.Delete)
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *controllers.Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.SignUp)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.GET("/route-check", authMiddleware.OptionalJWTAuth(), c.Auth.RouteCheck)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	session := authenticated.Group("/auth")
	{
		session.GET("/me", c.Auth.Me)
		session.POST("/logout", c.Auth.Logout)
		session.POST("/change-password", c.Auth.ChangePassword)
	}

	authenticated.GET("/dashboard", c.Dashboard.Get)

	me := authenticated.Group("/me")
	{
		students := me.Group("", authMiddleware.RoleRequired(models.RoleStudent))
		students.GET("/enrollments", c.Me.Enrollments())
		students.GET("/grades", c.Me.Grades())
		students.GET("/attendance", c.Me.Attendance())
		students.GET("/payments", c.Me.Payments())

		me.GET("/courses", authMiddleware.RoleRequired(models.RoleLecturer), c.Me.Courses())
	}

	exports := authenticated.Group("/exports")
	{
		exports.GET("/courses/:id/grades", authMiddleware.RoleRequired(teachingStaff...), c.Export.CourseGrades)
		exports.GET("/payments", authMiddleware.RoleRequired(adminOnly...), c.Export.Payments)
	}

	authenticated.POST("/profiles", authMiddleware.RoleRequired(adminOnly...), c.Auth.CreateProfile)
	authenticated.POST("/materials/:id/file", authMiddleware.RoleRequired(teachingStaff...), c.Material.UploadFile)

	for _, r := range resourceRoutes(c) {
		mountResource(authenticated, authMiddleware, r)
	}
}
