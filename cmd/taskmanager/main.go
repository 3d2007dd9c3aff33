package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	taskRepo := repository.NewTaskRepository(db)

	var users service.UserGateway
	switch cfg.UserStore {
	case config.UserStoreStatic:
		fixed, err := service.StaticUsers(hasher, service.DemoAccounts)
		if err != nil {
			log.Fatalf("static users: %v", err)
		}
		users = repository.NewStaticUserStore(fixed)
	default:
		users = repository.NewUserRepository(db)
	}

	taskSvc := service.NewTaskService(taskRepo, users)
	credentialSvc := service.NewCredentialService(users, hasher, tokens)
	reportSvc := service.NewReportService(users, taskRepo)

	if cfg.SeedUsers && cfg.UserStore == config.UserStoreDB {
		if err := credentialSvc.Seed(ctx, service.DemoAccounts); err != nil {
			log.Fatalf("seed users: %v", err)
		}
	}

	scheduler := service.NewSchedulerService(time.Local, 30*time.Second)
	report := func(ctx context.Context) error { return reportSvc.Run(ctx, time.Now()) }
	if cfg.ReportTime != "" {
		if _, err := scheduler.ScheduleDaily("overdue-report", cfg.ReportTime, report); err != nil {
			log.Fatalf("schedule report: %v", err)
		}
	} else if cfg.ReportInterval > 0 {
		if _, err := scheduler.ScheduleInterval("overdue-report", cfg.ReportInterval, report); err != nil {
			log.Fatalf("schedule report: %v", err)
		}
	}
	if scheduler.Entries() > 0 {
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := api.NewServer(cfg.HTTPAddr, cfg.BasePath, taskSvc, credentialSvc, tokens)

	log.Println("Task manager started.")
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
