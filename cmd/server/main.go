package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "outdoor-rental-backend/internal/api/http"
	"outdoor-rental-backend/internal/config"
	"outdoor-rental-backend/internal/contract"
	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/repository/postgres"
	"outdoor-rental-backend/internal/security"
	"outdoor-rental-backend/internal/service"
	"outdoor-rental-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Outdoor Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "backend", cfg.Email.Backend)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Storage
	images, err := storage.NewImageStore(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize Email and Contract Delivery
	emailSvc, err := service.NewEmailService(cfg.Email, cfg.Company)
	if err != nil {
		logger.Error("Failed to initialize email service", "error", err)
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	contractGen := contract.NewGenerator(contract.Company{
		Name:     cfg.Company.Name,
		Email:    cfg.Company.Email,
		Phone:    cfg.Company.Phone,
		Web:      cfg.Company.Web,
		Address:  cfg.Company.Address,
		BankIBAN: cfg.Company.BankIBAN,
	})
	deliveryQueue := service.NewContractDeliveryQueue(cfg.Notifier, contractGen, emailSvc)
	defer deliveryQueue.Stop()

	// Initialize Services
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository, store.ReservationRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.EquipmentRepository,
		equipmentSvc,
		contractGen,
		deliveryQueue,
		emailSvc,
	)
	authSvc := service.NewAuthService(cfg.Admin, tokenManager)

	// Initialize Router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Equipment:    equipmentSvc,
		Reservations: reservationSvc,
		Auth:         authSvc,
		Tokens:       tokenManager,
		Images:       images,
		MaxFileSize:  cfg.Storage.MaxFileSize << 20,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
