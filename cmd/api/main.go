package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"worshipscheduler/config"
	authadapter "worshipscheduler/internal/adapters/auth"
	"worshipscheduler/internal/adapters/email"
	httpdelivery "worshipscheduler/internal/delivery/http"
	"worshipscheduler/internal/delivery/http/controllers"
	"worshipscheduler/internal/delivery/http/middleware"
	"worshipscheduler/internal/repository/postgres"
	"worshipscheduler/internal/services"
)

const (
	serviceTimeout = 10 * time.Second
	bcryptCost     = 10
)

// @title Worship Scheduler API
// @version 1.0
// @description Worship-team scheduling and schedule swap negotiation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	swapRepo := postgres.NewSwapRequestRepository(db)
	tx := postgres.NewTransactor(db)

	hasher := authadapter.NewBcryptHasher(bcryptCost)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	notifier := services.NewNotificationService(mailer, email.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry)
	scheduleService := services.NewScheduleService(scheduleRepo, teamRepo, tx, serviceTimeout)
	swapService := services.NewSwapService(swapRepo, scheduleRepo, teamRepo, userRepo, notifier, tx, logger, serviceTimeout)

	mux := httpdelivery.NewRouter(
		verifier,
		controllers.NewAuthController(logger, authService),
		controllers.NewScheduleController(logger, scheduleService),
		controllers.NewSwapController(logger, swapService),
	)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.RequestLogging(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
