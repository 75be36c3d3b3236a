package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/docpay/settlement-engine/internal/config"
	"github.com/docpay/settlement-engine/internal/repository"
	"github.com/docpay/settlement-engine/internal/scheduler"
	"github.com/docpay/settlement-engine/internal/service"
)

func main() {
	log.Println("Starting settlement scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	store := repository.NewStore(db)
	settlementService := service.NewSettlementService(store, time.Now)
	sweep := scheduler.New(settlementService, store.Doctors, time.Now)

	// The sweep runs once per day in the configured timezone; the exact
	// time-of-day is an operational parameter.
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.SchedulerLocation()))

	_, err = c.AddFunc(cfg.Scheduler.SweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if _, err := sweep.RunDailySweep(ctx); err != nil {
			log.Printf("Daily sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Error scheduling daily sweep: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}
