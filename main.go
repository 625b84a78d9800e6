package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/bolsa-dev/bolsa-engine/migrations"
	"github.com/bolsa-dev/bolsa-engine/pkg/auth"
	"github.com/bolsa-dev/bolsa-engine/pkg/config"
	"github.com/bolsa-dev/bolsa-engine/pkg/database"
	"github.com/bolsa-dev/bolsa-engine/pkg/handlers"
	"github.com/bolsa-dev/bolsa-engine/pkg/logging"
	"github.com/bolsa-dev/bolsa-engine/pkg/middleware"
	"github.com/bolsa-dev/bolsa-engine/pkg/repositories"
	"github.com/bolsa-dev/bolsa-engine/pkg/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Database),
		zap.String("db_host", cfg.Database.Host))

	ctx := context.Background()
	dbCfg := cfg.Database.Pool()
	logger.Info("Connecting to database",
		zap.String("dsn", logging.SanitizeConnectionString(dbCfg.DSN())))
	db, err := database.Connect(ctx, dbCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrationDB, err := sql.Open("pgx", dbCfg.DSN())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, migrations.FS, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = migrationDB.Close()

	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	authService := auth.NewAuthService(tokens, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	userRepo := repositories.NewUserRepository(db)
	offerRepo := repositories.NewOfferRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)

	identityService := services.NewIdentityService(userRepo, tokens, cfg.Auth.BcryptCost, logger)
	offerService := services.NewOfferService(offerRepo, enrollmentRepo, assignmentRepo, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(db, logger).RegisterRoutes(mux)
	handlers.NewIdentityHandler(identityService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewOffersHandler(offerService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewEnrollmentsHandler(offerService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAssignmentsHandler(offerService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting bolsa-engine", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
