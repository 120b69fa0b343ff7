package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharmacy-loan-tracker/internal/config"
	"pharmacy-loan-tracker/internal/database"
	"pharmacy-loan-tracker/internal/handler"
	"pharmacy-loan-tracker/internal/mailer"
	"pharmacy-loan-tracker/internal/middleware"
	"pharmacy-loan-tracker/internal/pdf"
	"pharmacy-loan-tracker/internal/repository"
	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize session token utilities
	utils.InitJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// 3. Initialize database connection
	db := database.Connect(cfg)

	// 4. Initialize repositories
	hospitalRepo := repository.NewHospitalRepo(db)
	medicationRepo := repository.NewMedicationRepo(db)
	referenceRepo := repository.NewReferenceRepo(db)
	loanRepo := repository.NewLoanRepo(db, referenceRepo)
	settingsRepo := repository.NewSettingsRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize document generation and mail transport
	generator := pdf.NewGenerator(cfg.Pharmacy)
	mail := mailer.New(settingsRepo, cfg.SMTP)

	// 6. Initialize services
	notificationService := service.NewNotificationService(loanRepo, generator, mail, cfg.Pharmacy.StorageDir)
	loanService := service.NewLoanService(loanRepo, hospitalRepo, medicationRepo, auditRepo, notificationService)
	hospitalService := service.NewHospitalService(hospitalRepo, auditRepo)
	medicationService := service.NewMedicationService(medicationRepo, auditRepo)
	settingsService := service.NewSettingsService(settingsRepo, auditRepo, mail)
	dashboardService := service.NewDashboardService(loanRepo, hospitalRepo, medicationRepo, auditRepo)
	searchService := service.NewSearchService(loanRepo, hospitalRepo, medicationRepo)

	// 7. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(cfg.Auth)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	medicationHandler := handler.NewMedicationHandler(medicationService)
	loanHandler := handler.NewLoanHandler(loanService, generator)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, searchService)

	// 9. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "pharmacy-loan-tracker",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// Application routes (authenticated)
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(cfg.Auth.CookieName))
	{
		hospitals := api.Group("/hospitals")
		{
			hospitals.GET("", hospitalHandler.GetAllHospitals)
			hospitals.POST("", hospitalHandler.CreateHospital)
			hospitals.GET("/:id", hospitalHandler.GetHospital)
			hospitals.PUT("/:id", hospitalHandler.UpdateHospital)
			hospitals.DELETE("/:id", hospitalHandler.DeleteHospital)
		}

		medications := api.Group("/medications")
		{
			medications.GET("", medicationHandler.GetAllMedications)
			medications.POST("", medicationHandler.CreateMedication)
			medications.GET("/:id", medicationHandler.GetMedication)
			medications.PUT("/:id", medicationHandler.UpdateMedication)
			medications.DELETE("/:id", medicationHandler.DeleteMedication)
		}

		loans := api.Group("/loans")
		{
			loans.GET("", loanHandler.ListLoans)
			loans.POST("", loanHandler.CreateLoan)
			loans.GET("/export", loanHandler.ExportCSV)
			loans.POST("/bulk-return", loanHandler.BulkReturn)
			loans.POST("/pending-report", loanHandler.PendingReport)
			loans.GET("/:id", loanHandler.GetLoan)
			loans.GET("/:id/pdf", loanHandler.LoanPDF)
			loans.PATCH("/:id/processed", loanHandler.SetProcessed)
			loans.PATCH("/:id/returned", loanHandler.SetReturned)
			loans.PATCH("/:id/notes", loanHandler.UpdateNotes)
		}

		api.GET("/dashboard/summary", dashboardHandler.GetSummary)
		api.GET("/search", dashboardHandler.Search)

		settings := api.Group("/settings/smtp")
		{
			settings.GET("", settingsHandler.GetSmtpSettings)
			settings.PUT("", settingsHandler.UpdateSmtpSettings)
			settings.POST("/test", settingsHandler.SendTestEmail)
		}
	}

	// 10. Start server with graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
