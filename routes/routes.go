package routes

import (
	"net/http"
	"time"

	"medivault/handlers"
	"medivault/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReminderRoutes registers reminder endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.CreateReminderHandler)
		api.GET("", hb.ListRemindersHandler)
		api.GET("/upcoming", hb.ListUpcomingRemindersHandler)
		api.GET("/:id", hb.GetReminderHandler)
		api.PUT("/:id", hb.UpdateReminderHandler)
		api.DELETE("/:id", hb.DeleteReminderHandler)
		api.POST("/:id/complete", hb.CompleteReminderHandler)
		api.POST("/:id/miss", hb.MissReminderHandler)
	}
}

// RegisterMedicationRoutes registers medication endpoints.
func RegisterMedicationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medications")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.CreateMedicationHandler)
		api.GET("", hb.ListMedicationsHandler)
		api.GET("/:id", hb.GetMedicationHandler)
		api.PUT("/:id", hb.UpdateMedicationHandler)
		api.DELETE("/:id", hb.DeleteMedicationHandler)
		api.POST("/:id/intake", hb.LogIntakeHandler)
		api.GET("/:id/adherence", hb.GetAdherenceHandler)
	}
}

// RegisterAppointmentRoutes registers appointment endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("", hb.ListAppointmentsHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.PUT("/:id", hb.UpdateAppointmentHandler)
		api.DELETE("/:id", hb.DeleteAppointmentHandler)
	}
}

// RegisterEmergencyRoutes registers SOS endpoints. The critical-profile
// read is deliberately outside the authenticated group: the access token
// in the URL is the only credential a first responder has.
func RegisterEmergencyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/emergency")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/trigger", hb.TriggerEmergencyHandler)
		api.GET("", hb.ListEmergenciesHandler)
		api.POST("/:id/resolve", hb.ResolveEmergencyHandler)
	}

	r.GET("/api/public/emergency/:username/:token", hb.PublicEmergencyAccessHandler)
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.ListNotificationsHandler)
		api.POST("/read-all", hb.MarkAllNotificationsReadHandler)
		api.POST("/:id/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediVault"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterReminderRoutes(r, hb)
	RegisterMedicationRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterEmergencyRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r)
}
