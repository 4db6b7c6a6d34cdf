package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"consultorio-server/internal/config"
	"consultorio-server/internal/handlers"
	"consultorio-server/internal/middleware"
)

var startedAt = time.Now()

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db)
	visitHandler := handlers.NewVisitHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	historyHandler := handlers.NewClinicalHistoryHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		private.GET("/auth/profile", authHandler.GetProfile)

		// Patient routes
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.POST("", patientHandler.CreatePatient)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", patientHandler.DeletePatient)
		}

		// Visit routes
		visitRoutes := private.Group("/visits")
		{
			visitRoutes.GET("", visitHandler.GetVisits)
			visitRoutes.GET("/patient/:patientId", visitHandler.GetVisitsForPatient)
			visitRoutes.GET("/:id", visitHandler.GetVisitByID)
			visitRoutes.POST("", visitHandler.CreateVisit)
			visitRoutes.PUT("/:id", visitHandler.UpdateVisit)
			visitRoutes.DELETE("/:id", visitHandler.DeleteVisit)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/patient/:patientId", appointmentHandler.GetAppointmentsForPatient)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		// Clinical history routes
		historyRoutes := private.Group("/clinical-histories")
		{
			historyRoutes.GET("/patient/:patientId", historyHandler.GetClinicalHistoryForPatient)
			historyRoutes.GET("/patient/:patientId/summary", historyHandler.GetClinicalHistorySummary)
			historyRoutes.POST("", historyHandler.CreateClinicalHistory)
			historyRoutes.PUT("/:id", historyHandler.UpdateClinicalHistory)
		}
	}

	// Health check endpoint; the client polls it for update notifications.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":         "ok",
			"service":        "consultorio-server",
			"environment":    cfg.Environment,
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
		})
	})
}
