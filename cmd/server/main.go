package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecard.backend/internal/config"
	"timecard.backend/internal/infrastructure/datasources/postgres"
	"timecard.backend/internal/infrastructure/jobs"
	"timecard.backend/internal/infrastructure/mailer"
	"timecard.backend/internal/infrastructure/repositories"
	"timecard.backend/internal/infrastructure/sms"
	"timecard.backend/internal/interfaces/http/handlers"
	"timecard.backend/internal/interfaces/http/middleware"
	"timecard.backend/internal/usecases"
	"timecard.backend/pkg/jwt"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/redis"
)

const (
	clockInLockPrefix = "clockin-lock:"
	verifyFailPrefix  = "verify-attempts:"
	magicLinkPrefix   = "magic-link:"
	shutdownTimeout   = 10 * time.Second
)

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	migrateDB       = postgres.Migrate
	newSessionStore = redis.NewSessionStore
	shutdownSignal  = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	runServer = func(ctx context.Context, srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return err
		}
		logger.Info(ctx, "Database schema migrated")
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	app := buildApp(cfg, db, sessionStore)

	sigCtx, stop := shutdownSignal()
	defer stop()

	go app.sweeper.Start(sigCtx)
	defer app.sweeper.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(ctx, "Timecard backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(app.router.Routes())),
	)
	if err := runServer(sigCtx, srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}

type app struct {
	router  *gin.Engine
	sweeper *jobs.UnverifiedTimecardSweeper
}

func buildApp(cfg *config.Config, db *gorm.DB, sessionStore *redis.SessionStore) *app {
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	geopointRepo := repositories.NewGeopointRepository(db)
	settingsRepo := repositories.NewUserSettingsRepository(db)
	identityRepo := repositories.NewIdentityRepository(db)
	inviteRepo := repositories.NewInviteRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	timecardRepo := repositories.NewTimecardRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Outbound channels
	var smsSender usecases.SMSSender = sms.LogSender{}
	if cfg.SMS.Enabled() {
		smsSender = sms.NewTwilioSender(cfg.SMS)
	} else {
		logger.Warn(context.Background(), "Twilio credentials missing, verification codes are only logged")
	}
	mail := mailer.NewLogMailer()
	locker := redis.NewLocker(clockInLockPrefix, cfg.ClockIn.LockTTL)
	verifyAttempts := redis.NewAttemptCounter(verifyFailPrefix, cfg.ClockIn.VerificationCodeTTL)
	magicTokens := redis.NewTokenStore(magicLinkPrefix, cfg.Auth.MagicLinkTTL)

	// Usecases
	userUsecase := usecases.NewUserUsecase(userRepo, geopointRepo, settingsRepo, identityRepo, assignmentRepo, timecardRepo, uow)
	authUsecase := usecases.NewAuthUsecase(identityRepo, userRepo, settingsRepo, userUsecase, jwtService, sessionStore, magicTokens, mail, cfg.Server.BaseURL)
	inviteUsecase := usecases.NewInviteUsecase(inviteRepo, identityRepo, userRepo, geopointRepo, settingsRepo, uow, mail, cfg.Server.BaseURL)
	assignmentUsecase := usecases.NewAssignmentUsecase(assignmentRepo, userRepo, uow)
	timecardUsecase := usecases.NewTimecardUsecase(
		timecardRepo, assignmentRepo, userRepo, uow, smsSender, locker, verifyAttempts,
		usecases.Geofence{
			MilesPerDegree:   cfg.Geofence.MilesPerDegree,
			MaxDistanceMiles: cfg.Geofence.MaxDistanceMiles,
		},
		usecases.ClockInRules{
			SMSPolicy:         cfg.ClockIn.SMSPolicy,
			CodeTTL:           cfg.ClockIn.VerificationCodeTTL,
			MaxVerifyAttempts: cfg.ClockIn.MaxVerifyAttempts,
		},
	)
	settingsUsecase := usecases.NewUserSettingsUsecase(settingsRepo, uow)
	geopointUsecase := usecases.NewGeopointUsecase(geopointRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		inviteHandler:       handlers.NewInviteHandler(inviteUsecase),
		userHandler:         handlers.NewUserHandler(userUsecase),
		assignmentHandler:   handlers.NewAssignmentHandler(assignmentUsecase),
		timecardHandler:     handlers.NewTimecardHandler(timecardUsecase),
		userSettingsHandler: handlers.NewUserSettingsHandler(settingsUsecase),
		geopointHandler:     handlers.NewGeopointHandler(geopointUsecase),
		authMiddleware:      middleware.AuthMiddleware(jwtService, sessionStore),
		idempotency:         middleware.IdempotencyMiddleware(),
		authLimiter:         middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute).Handler(),
		clockLimiter:        middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute).Handler(),
	})

	return &app{
		router:  r,
		sweeper: jobs.NewUnverifiedTimecardSweeper(timecardRepo, cfg.ClockIn.SweepInterval, cfg.ClockIn.VerificationCodeTTL),
	}
}
