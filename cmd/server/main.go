package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/docpay/settlement-engine/internal/config"
	"github.com/docpay/settlement-engine/internal/handler"
	"github.com/docpay/settlement-engine/internal/repository"
	"github.com/docpay/settlement-engine/internal/service"
	"github.com/docpay/settlement-engine/pkg/response"
)

func main() {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	store := repository.NewStore(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	settlementService := service.NewSettlementService(store, time.Now)
	payoutService := service.NewPayoutService(store.Doctors, store.Payments, store.Batches)
	reportingService := service.NewReportingService(reportRepo, store.Payments, redisClient, cfg.Reports.CacheTTL, time.Now)

	settlementHandler := handler.NewSettlementHandler(settlementService)
	payoutHandler := handler.NewPayoutHandler(payoutService)
	reportHandler := handler.NewReportHandler(reportingService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(settlementHandler, payoutHandler, reportHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	settlementHandler *handler.SettlementHandler,
	payoutHandler *handler.PayoutHandler,
	reportHandler *handler.ReportHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Administrative trigger; authorization happens upstream
	api.HandleFunc("/admin/doctors/{doctorId}/settle", settlementHandler.SettleDoctor).Methods("POST")

	// Doctor self-service
	api.HandleFunc("/doctors/{doctorId}/batches", payoutHandler.ListBatches).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/batches/{batchId}", payoutHandler.GetBatch).Methods("GET")
	api.HandleFunc("/doctors/{doctorId}/payout-stats", payoutHandler.PayoutStats).Methods("GET")

	// Commission reporting
	api.HandleFunc("/reports/commissions", reportHandler.TotalCommission).Methods("GET")
	api.HandleFunc("/reports/commissions/month-to-date", reportHandler.MonthToDateCommission).Methods("GET")
	api.HandleFunc("/reports/commissions/by-doctor", reportHandler.CommissionByDoctor).Methods("GET")
	api.HandleFunc("/reports/commissions/monthly", reportHandler.MonthlySeries).Methods("GET")
	api.HandleFunc("/reports/commissions/doctors/{doctorId}", reportHandler.DoctorCommissionDetail).Methods("GET")

	return router
}
