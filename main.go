// File: medivault/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medivault/config"
	"medivault/cron"
	"medivault/database"
	appointmentRepoPkg "medivault/database/repository/appointment"
	emergencyRepoPkg "medivault/database/repository/emergency"
	medicationRepoPkg "medivault/database/repository/medication"
	notificationRepoPkg "medivault/database/repository/notification"
	reminderRepoPkg "medivault/database/repository/reminder"
	userRepoPkg "medivault/database/repository/user"
	"medivault/handlers"
	"medivault/middleware"
	"medivault/routes"
	"medivault/services/appointment"
	"medivault/services/emergency"
	"medivault/services/medication"
	"medivault/services/notification"
	"medivault/services/reminder"
	"medivault/services/tasks"
	"medivault/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	reminderRepo := reminderRepoPkg.NewMongoReminderRepo()
	medicationRepo := medicationRepoPkg.NewMongoMedicationRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	emergencyRepo := emergencyRepoPkg.NewMongoEmergencyRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// delivery providers and queue.
	enqueuer := tasks.NewAsynqEnqueuer()
	defer enqueuer.Close()
	smsProvider := utils.NewGatewaySMS()
	emailProvider := utils.NewSMTPEmail()
	pushProvider := utils.NewFCMPush()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:  notificationRepo,
		Users: userRepo,
		Email: emailProvider,
		SMS:   smsProvider,
		Push:  pushProvider,
	}

	reminderService := &reminder.DefaultReminderService{
		Repo:  reminderRepo,
		Queue: enqueuer,
	}

	medicationService := &medication.DefaultMedicationService{
		Repo:      medicationRepo,
		Reminders: reminderRepo,
		Notifier:  notificationService,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:      appointmentRepo,
		Reminders: reminderRepo,
	}

	emergencyService := &emergency.DefaultEmergencyService{
		Repo:          emergencyRepo,
		Users:         userRepo,
		Medications:   medicationRepo,
		Notifier:      notificationService,
		SMS:           smsProvider,
		Email:         emailProvider,
		PublicBaseURL: config.AppConfig.PublicBaseURL,
	}

	// background workers.
	cron.InitReminderWorker(notificationService)
	scheduler := cron.NewScheduler(reminderService, medicationService, logger)
	if err := scheduler.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start scheduler: %v", err)
	}

	// handlers.
	reminderHandler := handlers.NewReminderHandler(reminderService)
	medicationHandler := handlers.NewMedicationHandler(medicationService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	emergencyHandler := handlers.NewEmergencyHandler(emergencyService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Reminder endpoints.
		CreateReminderHandler:        reminderHandler.CreateReminderHandler,
		UpdateReminderHandler:        reminderHandler.UpdateReminderHandler,
		DeleteReminderHandler:        reminderHandler.DeleteReminderHandler,
		GetReminderHandler:           reminderHandler.GetReminderHandler,
		ListRemindersHandler:         reminderHandler.ListRemindersHandler,
		ListUpcomingRemindersHandler: reminderHandler.ListUpcomingRemindersHandler,
		CompleteReminderHandler:      reminderHandler.CompleteReminderHandler,
		MissReminderHandler:          reminderHandler.MissReminderHandler,

		// Medication endpoints.
		CreateMedicationHandler: medicationHandler.CreateMedicationHandler,
		UpdateMedicationHandler: medicationHandler.UpdateMedicationHandler,
		DeleteMedicationHandler: medicationHandler.DeleteMedicationHandler,
		GetMedicationHandler:    medicationHandler.GetMedicationHandler,
		ListMedicationsHandler:  medicationHandler.ListMedicationsHandler,
		LogIntakeHandler:        medicationHandler.LogIntakeHandler,
		GetAdherenceHandler:     medicationHandler.GetAdherenceHandler,

		// Appointment endpoints.
		CreateAppointmentHandler: appointmentHandler.CreateAppointmentHandler,
		UpdateAppointmentHandler: appointmentHandler.UpdateAppointmentHandler,
		DeleteAppointmentHandler: appointmentHandler.DeleteAppointmentHandler,
		GetAppointmentHandler:    appointmentHandler.GetAppointmentHandler,
		ListAppointmentsHandler:  appointmentHandler.ListAppointmentsHandler,

		// Emergency endpoints.
		TriggerEmergencyHandler:      emergencyHandler.TriggerEmergencyHandler,
		ResolveEmergencyHandler:      emergencyHandler.ResolveEmergencyHandler,
		ListEmergenciesHandler:       emergencyHandler.ListEmergenciesHandler,
		PublicEmergencyAccessHandler: emergencyHandler.PublicEmergencyAccessHandler,

		// Notification endpoints.
		ListNotificationsHandler:        notificationHandler.ListNotificationsHandler,
		MarkNotificationReadHandler:     notificationHandler.MarkNotificationReadHandler,
		MarkAllNotificationsReadHandler: notificationHandler.MarkAllNotificationsReadHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
