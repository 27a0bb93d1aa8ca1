// Staffline is a staffing management backend for event-service companies.
// It turns uploaded BEO documents into draft events, manages publishing and
// shift requests, and reports on attendance and labor cost.
//
// @title Staffline API
// @version 1.0
// @description Staffing management backend: BEO extraction, events, shifts, reports.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"staffline/config"
	_ "staffline/docs"
	"staffline/internal/adapters/auth"
	"staffline/internal/adapters/email"
	"staffline/internal/adapters/storage"
	"staffline/internal/beo"
	delivery "staffline/internal/delivery/http"
	"staffline/internal/delivery/http/controllers"
	"staffline/internal/delivery/http/middleware"
	"staffline/internal/repository/postgres"
	"staffline/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	orgRepo := postgres.NewOrganizationRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	shiftRepo := postgres.NewShiftRequestRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Adapters
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	storeProvider := "noop"
	if cfg.Storage.Bucket != "" {
		storeProvider = "s3"
	}
	fileStore, err := storage.NewFileStore(storage.StoreConfig{
		Provider: storeProvider,
		S3: storage.S3Config{
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create file store", "err", err)
		os.Exit(1)
	}
	extractor := beo.NewExtractor(beo.Config{
		Pdftotext:     cfg.Extraction.Pdftotext,
		Pdftoppm:      cfg.Extraction.Pdftoppm,
		Tesseract:     cfg.Extraction.Tesseract,
		DPI:           cfg.Extraction.DPI,
		MaxPages:      cfg.Extraction.OCRMaxPages,
		MinTextLen:    cfg.Extraction.MinPDFTextLen,
		MaxGuestCount: cfg.Extraction.MaxGuestCount,
	}, logger)

	// Services
	userService := services.NewUserService(profileRepo, orgRepo, hasher, jwtManager, cfg.TokenExpiry)
	eventService := services.NewEventService(eventRepo, profileRepo)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	shiftService := services.NewShiftService(shiftRepo, eventRepo, profileRepo, emailService, logger)
	reportService := services.NewReportService(reportRepo, profileRepo)
	beoService := services.NewBEOService(extractor, eventRepo, profileRepo, fileStore, services.BEOConfig{
		GuestsPerShift:    cfg.Extraction.GuestsPerShift,
		AllowStaffUploads: cfg.Extraction.AllowStaffUploads,
	}, logger)

	// HTTP
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:   controllers.NewAuthController(logger, userService),
		BEO:    controllers.NewBEOController(logger, beoService),
		Event:  controllers.NewEventController(logger, eventService),
		Shift:  controllers.NewShiftController(logger, shiftService),
		Report: controllers.NewReportController(logger, reportService),
	}, jwtManager, logger)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
