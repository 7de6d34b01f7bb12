package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"outdoor-rental-backend/internal/config"
	"outdoor-rental-backend/internal/contract"
	"outdoor-rental-backend/internal/jobs"
	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/repository/postgres"
	"outdoor-rental-backend/internal/scheduler"
	"outdoor-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sync-reservation-statuses', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
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

	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository, store.ReservationRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.EquipmentRepository,
		equipmentSvc,
		contractGen,
		nil,
		emailSvc,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(reservationSvc, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "sync-reservation-statuses":
		jobRunner.SyncReservationStatuses()
	case "send-return-reminders":
		jobRunner.SendReturnReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - sync-reservation-statuses\n")
		fmt.Printf("  - send-return-reminders\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
