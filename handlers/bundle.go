package handlers

import (
	userRepoPkg "medivault/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Reminder endpoints
	CreateReminderHandler        gin.HandlerFunc
	UpdateReminderHandler        gin.HandlerFunc
	DeleteReminderHandler        gin.HandlerFunc
	GetReminderHandler           gin.HandlerFunc
	ListRemindersHandler         gin.HandlerFunc
	ListUpcomingRemindersHandler gin.HandlerFunc
	CompleteReminderHandler      gin.HandlerFunc
	MissReminderHandler          gin.HandlerFunc

	// Medication endpoints
	CreateMedicationHandler gin.HandlerFunc
	UpdateMedicationHandler gin.HandlerFunc
	DeleteMedicationHandler gin.HandlerFunc
	GetMedicationHandler    gin.HandlerFunc
	ListMedicationsHandler  gin.HandlerFunc
	LogIntakeHandler        gin.HandlerFunc
	GetAdherenceHandler     gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler gin.HandlerFunc
	UpdateAppointmentHandler gin.HandlerFunc
	DeleteAppointmentHandler gin.HandlerFunc
	GetAppointmentHandler    gin.HandlerFunc
	ListAppointmentsHandler  gin.HandlerFunc

	// Emergency endpoints
	TriggerEmergencyHandler      gin.HandlerFunc
	ResolveEmergencyHandler      gin.HandlerFunc
	ListEmergenciesHandler       gin.HandlerFunc
	PublicEmergencyAccessHandler gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler        gin.HandlerFunc
	MarkNotificationReadHandler     gin.HandlerFunc
	MarkAllNotificationsReadHandler gin.HandlerFunc
}
