package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/config"
	"schoolhub_backend/db"
	"schoolhub_backend/handlers"
	"schoolhub_backend/metrics"
	"schoolhub_backend/middleware"
	"schoolhub_backend/models"
)

// SetupRoutes wires every endpoint with its credential source and its exact
// allowed-role set. Role lists live here and only here; handlers never check
// roles themselves.
func SetupRoutes(r *gin.Engine, database *sql.DB, cfg *config.Config) {
	userStore := db.NewUserStore(database)
	attendanceStore := db.NewAttendanceStore(database, cfg.SingleSessionPerDay)
	notificationStore := db.NewNotificationStore(database, cfg.NotificationRetention)
	tokens := middleware.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	authHandler := handlers.NewAuthHandler(userStore, tokens)
	userHandler := handlers.NewUserHandler(userStore)
	courseHandler := handlers.NewCourseHandler(database)
	groupHandler := handlers.NewGroupHandler(database)
	attendanceHandler := handlers.NewAttendanceHandler(database)
	staffAttendanceHandler := handlers.NewStaffAttendanceHandler(attendanceStore)
	notificationsHandler := handlers.NewNotificationsHandler(notificationStore)
	gradeHandler := handlers.NewGradeHandler(database, notificationStore)
	invoiceHandler := handlers.NewInvoiceHandler(database, notificationStore)
	announcementHandler := handlers.NewAnnouncementHandler(database)
	healthHandler := handlers.NewHealthHandler(database)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/metrics", metrics.Handler())
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Browser routes authenticate with the token cookie.
	web := r.Group("/")
	web.Use(middleware.Auth(userStore, tokens, middleware.FromCookie))
	{
		web.POST("/logout", authHandler.Logout)
		web.GET("/userinfo", userHandler.GetUserInfo)
		web.PUT("/users/me", userHandler.UpdateProfile)

		web.GET("/users",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR),
			userHandler.ListUsers)

		// Courses
		web.POST("/courses",
			middleware.RequireRoles(models.RoleAdmin, models.RoleStudyOffice),
			courseHandler.CreateCourse)
		web.GET("/courses", courseHandler.GetCourses)

		// Groups
		web.POST("/groups",
			middleware.RequireRoles(models.RoleAdmin, models.RoleStudyOffice),
			groupHandler.CreateGroup)
		web.POST("/groups/:id/members",
			middleware.RequireRoles(models.RoleAdmin, models.RoleStudyOffice),
			groupHandler.AddMember)
		web.GET("/groups", groupHandler.GetGroups)

		// Course attendance
		web.POST("/attendance",
			middleware.RequireRoles(models.RoleTeacher, models.RoleFaculty),
			attendanceHandler.MarkAttendance)
		web.GET("/attendance",
			middleware.RequireRoles(models.RoleTeacher, models.RoleFaculty, models.RoleAdmin, models.RoleHR),
			attendanceHandler.GetAttendances)
		web.GET("/student/attendance",
			middleware.RequireRoles(models.RoleStudent),
			attendanceHandler.GetStudentAttendance)

		// Staff attendance sessions (scannable code check-in)
		web.POST("/admin/staff-attendance/sessions",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR),
			staffAttendanceHandler.CreateSession)
		web.GET("/admin/staff-attendance",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR),
			staffAttendanceHandler.ListCheckIns)
		web.POST("/staff-attendance",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR, models.RoleFaculty,
				models.RoleTeacher, models.RoleStudyOffice),
			staffAttendanceHandler.CheckIn)

		// Grades
		web.POST("/grades",
			middleware.RequireRoles(models.RoleTeacher, models.RoleFaculty),
			gradeHandler.CreateGrade)
		web.GET("/student/points",
			middleware.RequireRoles(models.RoleStudent),
			gradeHandler.GetStudentPoints)

		// Invoices
		web.POST("/invoices",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR),
			invoiceHandler.CreateInvoice)
		web.PUT("/invoices/:id/paid",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR),
			invoiceHandler.MarkInvoicePaid)
		web.GET("/student/invoices",
			middleware.RequireRoles(models.RoleStudent),
			invoiceHandler.GetStudentInvoices)

		// Announcements
		web.POST("/announcements",
			middleware.RequireRoles(models.RoleAdmin, models.RoleHR, models.RoleStudyOffice),
			announcementHandler.CreateAnnouncement)
		web.GET("/announcements", announcementHandler.GetAnnouncements)
		web.POST("/announcements/:id/view", announcementHandler.MarkViewed)
	}

	// Notification polling clients send the same token as a bearer header.
	api := r.Group("/notifications")
	api.Use(middleware.Auth(userStore, tokens, middleware.FromBearer))
	{
		api.GET("/unread", notificationsHandler.ListUnread)
		api.PUT("/:id/read", notificationsHandler.MarkRead)
	}
}
