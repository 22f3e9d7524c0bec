package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	api "ilas-backend/internal/api/http"
	"ilas-backend/internal/config"
	"ilas-backend/internal/logger"
	"ilas-backend/internal/repository/postgres"
	"ilas-backend/internal/security"
	"ilas-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Optional .env for local development; config env overrides pick it up.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ILAS backend...", "address", cfg.GetServerAddress())
	logger.Info("Database configuration",
		"host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db, cfg.Lending.LockTimeoutMS)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	policy := service.NewLendingPolicy(cfg.Lending)

	authSvc := service.NewAuthService(store.MemberRepository, tokenManager, policy)
	lendingSvc := service.NewLendingService(store, store.MemberRepository, store.TransactionRepository, policy)
	bookSvc := service.NewBookService(store, store.BookRepository, store.MemberRepository, policy)
	auditSvc := service.NewAuditService(store.AuditRepository)
	reportSvc := service.NewReportService(store.BookRepository, store.TransactionRepository)

	handlers := api.NewHandlers(authSvc, lendingSvc, bookSvc, reportSvc, auditSvc)
	router := api.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
