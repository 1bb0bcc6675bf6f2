package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/tomward0606/StockSystem/internal/archive"
	"github.com/tomward0606/StockSystem/internal/auth"
	"github.com/tomward0606/StockSystem/internal/cache"
	"github.com/tomward0606/StockSystem/internal/catalogue"
	"github.com/tomward0606/StockSystem/internal/config"
	"github.com/tomward0606/StockSystem/internal/database"
	"github.com/tomward0606/StockSystem/internal/db"
	"github.com/tomward0606/StockSystem/internal/handlers"
	"github.com/tomward0606/StockSystem/internal/health"
	stockhttp "github.com/tomward0606/StockSystem/internal/http"
	"github.com/tomward0606/StockSystem/internal/mail"
	"github.com/tomward0606/StockSystem/internal/middleware"
	"github.com/tomward0606/StockSystem/internal/repositories"
	"github.com/tomward0606/StockSystem/internal/services"
	"github.com/tomward0606/StockSystem/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; summary endpoints just hit Postgres every time
	// when it is down.
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	orderRepo := repositories.NewOrderRepository(pool)
	dispatchRepo := repositories.NewDispatchRepository(pool)
	hiddenPartRepo := repositories.NewHiddenPartRepository(pool)

	// Mail provider; falls back to a mock that only logs when SMTP is not
	// configured.
	var mailer mail.Provider
	if cfg.Mail.Host != "" && cfg.Mail.Username != "" {
		mailer = mail.NewSMTPMailer(cfg)
		log.Printf("[Mail] Using SMTP via %s:%d", cfg.Mail.Host, cfg.Mail.Port)
	} else {
		mailer = mail.NewMockMailer()
		log.Println("[Mail] SMTP not configured, dispatch emails will only be logged")
	}

	// Catalogue store and optional snapshot archive
	store := catalogue.NewGitHubStore(cfg)
	archiver := archive.NewSnapshotArchiver(context.Background(), cfg)
	if archiver == nil {
		log.Println("[Archive] Snapshot archive not configured, catalogue revisions will not be archived")
	}

	// Services
	ledgerService := services.NewLedgerService(orderRepo, dispatchRepo)
	notificationService := services.NewNotificationService(mailer, orderRepo, dispatchRepo)
	ledgerService.SetNotificationService(notificationService)
	catalogueService := services.NewCatalogueService(store, hiddenPartRepo, archiver)
	reportService := services.NewReportService(dispatchRepo, orderRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, jwtManager)
	orderHandler := handlers.NewOrderHandler(ledgerService)
	dispatchHandler := handlers.NewDispatchHandler(ledgerService, reportService)
	catalogueHandler := handlers.NewCatalogueHandler(catalogueService)
	hiddenPartHandler := handlers.NewHiddenPartHandler(hiddenPartRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := stockhttp.NewRouter(
		authHandler,
		orderHandler,
		dispatchHandler,
		catalogueHandler,
		hiddenPartHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
