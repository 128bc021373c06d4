package app

import (
	"language_center_backend/internal/config"
	"language_center_backend/internal/middleware"
	"language_center_backend/internal/model"
	"language_center_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerCoordinatorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// The catalog is browsable without an account; logged-in staff see
		// unpublished courses too.
		public.GET("/catalog", middleware.TryAuthMiddleware(cfg), c.course.ListCourses)
	}
}

// Routes every authenticated user gets, student-centric operations included.
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.PUT("/profile/avatar", c.user.SetAvatar)

	// Courses
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.GET("/courses/:id/lessons", c.course.ListLessons)

	// Enrollment
	rg.POST("/courses/:id/enroll", c.enrollment.Enroll)
	rg.DELETE("/courses/:id/enroll", c.enrollment.Withdraw)
	rg.GET("/enrollments", c.enrollment.MyEnrollments)

	// Attendance and grades, own records
	rg.GET("/courses/:id/attendance/me", c.attendance.MyHistory)
	rg.GET("/courses/:id/grades/me", c.grade.MyReport)

	// Exams, student side
	rg.GET("/student/exams/:id", c.exam.GetStudentExam)
	rg.POST("/student/exams/:id/start", c.exam.StartAttempt)
	rg.POST("/student/exams/:id/submit", c.exam.SubmitExam)
	rg.GET("/student/exams/:id/results", c.exam.GetLatestResult)
	rg.GET("/student/submissions", c.exam.ListMySubmissions)
	rg.GET("/student/submissions/:submissionId/results", c.exam.GetResults)
	rg.GET("/exams", c.exam.ListExams)

	// PQR
	rg.POST("/pqr", c.pqr.CreateTicket)
	rg.GET("/pqr/mine", c.pqr.MyTickets)
	rg.GET("/pqr/:id", c.pqr.GetTicket)
	rg.POST("/pqr/:id/responses", c.pqr.Respond)

	// Assistant chat
	rg.POST("/chat/conversations", c.chat.CreateConversation)
	rg.GET("/chat/conversations", c.chat.ListConversations)
	rg.DELETE("/chat/conversations/:id", c.chat.DeleteConversation)
	rg.GET("/chat/conversations/:id/messages", c.chat.ListMessages)
	rg.POST("/chat/conversations/:id/messages", c.chat.SendMessage)
	rg.POST("/chat/conversations/:id/stream", c.chat.StreamMessage)

	// Uploads
	rg.POST("/uploads", c.upload.Upload)
	rg.GET("/uploads", c.upload.ListMine)
	rg.GET("/uploads/:id", c.upload.Get)
	rg.DELETE("/uploads/:id", c.upload.Delete)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		// Course management
		teacher.POST("/courses", c.course.CreateCourse)
		teacher.PUT("/courses/:id", c.course.UpdateCourse)
		teacher.DELETE("/courses/:id", c.course.DeleteCourse)
		teacher.POST("/courses/:id/lessons", c.course.CreateLesson)
		teacher.PUT("/lessons/:lessonId", c.course.UpdateLesson)
		teacher.DELETE("/lessons/:lessonId", c.course.DeleteLesson)

		// Roster
		teacher.GET("/courses/:id/enrollments", c.enrollment.CourseRoster)
		teacher.PUT("/courses/:id/enrollments/status", c.enrollment.SetStatus)

		// Attendance
		teacher.POST("/attendance/sessions", c.attendance.CreateSession)
		teacher.GET("/courses/:id/attendance/sessions", c.attendance.ListSessions)
		teacher.GET("/attendance/sessions/:sessionId/records", c.attendance.SessionRecords)
		teacher.POST("/attendance/sessions/:sessionId/records", c.attendance.MarkAttendance)
		teacher.GET("/courses/:id/attendance/summary", c.attendance.CourseSummary)

		// Grading
		teacher.POST("/courses/:id/grade-items", c.grade.CreateItem)
		teacher.GET("/courses/:id/grade-items", c.grade.ListItems)
		teacher.PUT("/grade-items/:itemId", c.grade.UpdateItem)
		teacher.DELETE("/grade-items/:itemId", c.grade.DeleteItem)
		teacher.POST("/grade-items/:itemId/entries", c.grade.RecordGrade)
		teacher.GET("/grade-items/:itemId/entries", c.grade.ListEntries)
		teacher.GET("/courses/:id/grades/:studentId", c.grade.StudentReport)

		// Exams, staff side
		teacher.POST("/exams", c.exam.CreateExam)
		teacher.GET("/exams/:id", c.exam.GetExam)
		teacher.PUT("/exams/:id", c.exam.UpdateExam)
		teacher.DELETE("/exams/:id", c.exam.DeleteExam)
		teacher.GET("/exams/:id/submissions", c.exam.ListSubmissions)
		teacher.PUT("/submissions/:submissionId/score", c.exam.OverrideScore)

		// Assigned staff move tickets; assignment itself stays with the
		// coordinator.
		teacher.PUT("/pqr/:id/status", c.pqr.Transition)
	}
}

func (a *App) registerCoordinatorRoutes(rg *gin.RouterGroup, c *controllers) {
	coordinator := rg.Group("/")
	coordinator.Use(middleware.RoleMiddleware(model.Coordinator))
	{
		// User administration
		coordinator.GET("/users", c.user.ListUsers)
		coordinator.PUT("/users/:id/role", c.user.SetRole)
		coordinator.PUT("/users/:id/disabled", c.user.SetDisabled)

		// PQR handling
		coordinator.GET("/pqr", c.pqr.ListTickets)
		coordinator.PUT("/pqr/:id/assign", c.pqr.Assign)
	}
}
