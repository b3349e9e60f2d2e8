package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hallengray/BPT-sub001/internal/analytics"
	"github.com/hallengray/BPT-sub001/internal/azure"
	"github.com/hallengray/BPT-sub001/internal/config"
	"github.com/hallengray/BPT-sub001/internal/handler"
	"github.com/hallengray/BPT-sub001/internal/middleware"
	"github.com/hallengray/BPT-sub001/internal/pdf"
	"github.com/hallengray/BPT-sub001/internal/repository"
	"github.com/hallengray/BPT-sub001/internal/service"
	"github.com/hallengray/BPT-sub001/pkg/api"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	pool   *pgxpool.Pool
	cfg    *config.Config
)

func main() {
	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool with pgx
	pool, err = pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Test database connection
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	// Initialize blob storage for generated reports. Fall back to the
	// in-memory client when Azure credentials are not configured so the
	// service stays usable in local development.
	var blobClient azure.BlobStorage
	if cfg.HasAzureStorage() {
		blobClient, err = azure.NewBlobStorageClient(
			cfg.Azure.Storage.AccountName,
			cfg.Azure.Storage.AccountKey,
			cfg.Azure.Storage.ReportContainer,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to initialize Azure Blob Storage client", zap.Error(err))
		}
	} else {
		logger.Warn("Azure storage credentials not set, using in-memory blob storage")
		blobClient = azure.NewMockBlobStorageClient(logger)
	}

	// Initialize repositories
	healthDataRepo := repository.NewHealthDataRepository(pool, logger)
	medicationRepo := repository.NewMedicationRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	// Initialize analytics components
	scheduler := analytics.NewScheduler()
	scheduler.HorizonDays = cfg.Analytics.HorizonDays
	scheduler.BufferDays = cfg.Analytics.BufferDays
	streakTracker := analytics.NewStreakTracker()
	qualityScorer := analytics.NewQualityScorer()
	reminderPrioritizer := analytics.NewReminderPrioritizer()

	// Initialize services
	healthDataService := service.NewHealthDataService(healthDataRepo, logger)
	medicationService := service.NewMedicationService(medicationRepo, scheduler, logger)
	insightsService := service.NewInsightsService(
		healthDataRepo,
		medicationRepo,
		streakTracker,
		qualityScorer,
		reminderPrioritizer,
		cfg.Analytics.SnapshotWindowDays,
		logger,
	)

	// Initialize PDF generator
	pdfGenerator := pdf.NewPDFGenerator(logger)

	reportService := service.NewReportService(
		reportRepo,
		healthDataRepo,
		medicationRepo,
		insightsService,
		blobClient,
		pdfGenerator,
		logger,
	)

	// Initialize handlers
	healthHandler := handler.NewHealthDataHandler(healthDataService, logger)
	medicationHandler := handler.NewMedicationHandler(medicationService, logger)
	insightsHandler := handler.NewInsightsHandler(insightsService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.Recovery(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.ErrorLogging(logger))

	registerRoutes(r, healthHandler, medicationHandler, insightsHandler, reportHandler)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	pool.Close()

	logger.Info("Server exited")
}

func registerRoutes(
	r *gin.Engine,
	healthHandler *handler.HealthDataHandler,
	medicationHandler *handler.MedicationHandler,
	insightsHandler *handler.InsightsHandler,
	reportHandler *handler.ReportHandler,
) {
	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	v1.GET("/openapi.json", serveOpenAPISpec)

	healthGroup := v1.Group("/health")
	{
		healthGroup.POST("/blood-pressure", healthHandler.CreateBloodPressure)
		healthGroup.GET("/blood-pressure", healthHandler.ListBloodPressure)
		healthGroup.POST("/diet", healthHandler.CreateDietEntry)
		healthGroup.GET("/diet", healthHandler.ListDietEntries)
		healthGroup.POST("/exercise", healthHandler.CreateExerciseEntry)
		healthGroup.GET("/exercise", healthHandler.ListExerciseEntries)
	}

	medGroup := v1.Group("/medications")
	{
		medGroup.POST("", medicationHandler.CreateMedication)
		medGroup.GET("", medicationHandler.ListMedications)
		medGroup.GET("/:id", medicationHandler.GetMedication)
		medGroup.PUT("/:id", medicationHandler.UpdateMedication)
		medGroup.DELETE("/:id", medicationHandler.DeleteMedication)
		medGroup.GET("/:id/doses", medicationHandler.ListDoses)
	}

	doseGroup := v1.Group("/doses")
	{
		doseGroup.POST("/sync", medicationHandler.SyncDoses)
		doseGroup.PUT("/:id/taken", medicationHandler.MarkDoseTaken)
	}

	insightsGroup := v1.Group("/insights")
	{
		insightsGroup.GET("/streak", insightsHandler.GetStreak)
		insightsGroup.GET("/quality", insightsHandler.GetQuality)
		insightsGroup.GET("/reminders", insightsHandler.GetReminders)
		insightsGroup.GET("/unannotated-readings", insightsHandler.GetUnannotatedReadings)
		insightsGroup.GET("/context-gaps", insightsHandler.GetContextGaps)
	}

	reportGroup := v1.Group("/reports")
	{
		reportGroup.POST("", reportHandler.GenerateReport)
		reportGroup.GET("", reportHandler.ListReports)
		reportGroup.GET("/:id/download", reportHandler.DownloadReport)
	}
}

// healthCheck reports service and database health.
func healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("health check failed: database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"service":  "bpt-analytics-backend",
		"version":  "1.0.0",
	})
}

// serveOpenAPISpec serves the embedded OpenAPI document.
func serveOpenAPISpec(c *gin.Context) {
	swagger, err := api.GetSwagger()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "failed to load API specification",
		})
		return
	}
	c.JSON(http.StatusOK, swagger)
}
