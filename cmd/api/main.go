package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/adapter/gateway/midtrans"
	"github.com/eventick/eventick/internal/adapter/handler"
	repo "github.com/eventick/eventick/internal/adapter/repository/postgres"
	"github.com/eventick/eventick/internal/config"
	"github.com/eventick/eventick/internal/core/services"
	"github.com/eventick/eventick/internal/platform/cache"
	"github.com/eventick/eventick/internal/platform/database"
)

func main() {
	cfg := config.Load()

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	dbCfg := database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}

	db, err := database.NewPostgresDB(dbCfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to db after retries: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := database.MigrateUp(dbCfg, "migrations"); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	inventoryRepo := repo.NewInventoryRepository(db)
	ticketRepo := repo.NewTicketRepository(db)
	transactionRepo := repo.NewTransactionRepository(db)
	eventRepo := repo.NewEventRepository(db)
	eventCache := cache.NewEventCache(redisClient, cfg.CacheTTL)

	gateway := midtrans.NewClient(midtrans.Config{
		BaseURL:       cfg.GatewayBaseURL,
		ServerKey:     cfg.GatewayServerKey,
		Timeout:       cfg.GatewayTimeout,
		ExpiryMinutes: int(cfg.PaymentExpiry.Minutes()),
	})

	purchaseService := services.NewPurchaseService(
		inventoryRepo, ticketRepo, transactionRepo, gateway, eventCache, cfg.PaymentExpiry,
	)
	ticketService := services.NewTicketService(ticketRepo)
	eventService := services.NewEventService(eventRepo, eventCache)

	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	notificationHandler := handler.NewNotificationHandler(purchaseService, cfg.GatewayServerKey)
	ticketHandler := handler.NewTicketHandler(ticketService)
	eventHandler := handler.NewEventHandler(eventService)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go purchaseService.RunExpirySweep(sweepCtx, cfg.SweepInterval, cfg.SweepBatch)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/events/{id}", eventHandler.Get)
	mux.HandleFunc("POST /api/v1/tickets", purchaseHandler.Create)
	mux.HandleFunc("GET /api/v1/tickets", ticketHandler.List)
	mux.HandleFunc("GET /api/v1/tickets/{id}", ticketHandler.Get)
	mux.HandleFunc("POST /api/v1/events/{id}/check-in", ticketHandler.CheckIn)
	mux.HandleFunc("POST /api/v1/payments/notifications", notificationHandler.Handle)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, `{"status":"unhealthy"}`, http.StatusServiceUnavailable)
			return
		}
		if err := cache.HealthCheck(redisClient); err != nil {
			http.Error(w, `{"status":"unhealthy"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logrus.Info("Shutting down server...")
	cancelSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exiting")
}
