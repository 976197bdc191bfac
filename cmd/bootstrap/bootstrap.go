package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-finder/config"
	deliveryHttp "doctor-finder/internal/delivery/http"
	"doctor-finder/internal/delivery/http/handler"
	"doctor-finder/internal/delivery/http/middleware"
	"doctor-finder/internal/domain/entity"
	domainGateway "doctor-finder/internal/domain/gateway"
	domainRepo "doctor-finder/internal/domain/repository"
	"doctor-finder/internal/gateway"
	"doctor-finder/internal/infrastructure/cache"
	"doctor-finder/internal/infrastructure/database"
	"doctor-finder/internal/repository"
	"doctor-finder/internal/service"
	"doctor-finder/internal/usecase"
	"doctor-finder/internal/validation"
	"doctor-finder/pkg/jwt"
	"doctor-finder/pkg/validator"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Workspaces  *service.WorkspaceRegistry
	Scheduler   *cron.Cron
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	// Postgres is only needed for a persistent directory
	if cfg.Directory.Driver == config.DirectoryDriverPostgres {
		db, err := database.NewPostgresConnection(cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		logrus.Info("Database connected successfully")

		if err := repository.MigrateDoctors(db); err != nil {
			return nil, err
		}
	}

	// Redis backs the auth storage slot and OTP store when selected
	if cfg.Storage.Driver == config.StorageDriverRedis {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	}

	// Initialize all layers
	if err := app.initializeServer(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initializeServer wires every layer and creates the HTTP server
func (app *App) initializeServer() error {
	cfg := app.Config
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()
	if err := validation.RegisterTags(customValidator); err != nil {
		return fmt.Errorf("failed to register validation tags: %w", err)
	}
	credentialRules := validation.NewCredentialRules(customValidator)

	// Initialize repositories
	storage, otpRepo := app.newStores()
	doctorRepo := app.newDoctorRepository(log)

	// Initialize gateways
	bookingBackend := gateway.NewMockBookingBackend(log, cfg.Mock.BookingLatency)
	authBackend := gateway.NewMockAuthBackend(log, jwtService, cfg.Mock.AuthLatency)
	mailer := newMailer(cfg, log)

	// Initialize services
	notifier := service.NewNotificationService(log)
	app.Workspaces = service.NewWorkspaceRegistry(log, storage, authBackend, notifier, service.WorkspaceOptions{
		StorageNamespace: cfg.Storage.Namespace,
		Clock:            service.RealClock(),
		CountdownTick:    cfg.OTP.CountdownTick,
		CountdownSeconds: cfg.OTP.ResendCountdown,
	})

	// Initialize usecases
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	directoryUsecase, err := usecase.NewDirectoryUsecase(ctx, log, doctorRepo, app.Workspaces)
	if err != nil {
		return fmt.Errorf("failed to load doctor directory: %w", err)
	}
	bookingUsecase := usecase.NewBookingUsecase(log, app.Workspaces, directoryUsecase, bookingBackend, notifier)
	authUsecase := usecase.NewAuthUsecase(log, app.Workspaces, jwtService, notifier)
	otpUsecase := usecase.NewOTPUsecase(log, app.Workspaces, otpRepo, mailer, notifier, cfg.OTP.TTL)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(directoryUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	authHandler := handler.NewAuthHandler(authUsecase, credentialRules)
	otpHandler := handler.NewOTPHandler(otpUsecase, credentialRules)
	notificationHandler := handler.NewNotificationHandler(notifier)

	// Initialize middleware
	clientMiddleware := middleware.NewClientMiddleware()
	authMiddleware := middleware.NewAuthMiddleware(authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(
		doctorHandler, bookingHandler, authHandler, otpHandler, notificationHandler,
		clientMiddleware, authMiddleware, corsMiddleware, rateLimitMiddleware,
	)
	httpRouter := router.Setup()

	// Initialize scheduler
	scheduler, err := newScheduler(cfg.Workspace, log, app.Workspaces, rateLimitMiddleware)
	if err != nil {
		return err
	}
	app.Scheduler = scheduler

	// Create server
	var httpHandler http.Handler = httpRouter
	httpHandler = handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(cfg.App.Env != "production"))(httpHandler)
	httpHandler = handlers.CombinedLoggingHandler(log.Writer(), httpHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// newStores picks the auth storage slot and OTP store backing
func (app *App) newStores() (domainRepo.KeyValueStorage, domainRepo.OTPRepository) {
	if app.RedisClient != nil {
		return repository.NewRedisStorage(app.RedisClient), repository.NewRedisOTPRepository(app.RedisClient)
	}
	return repository.NewMemoryStorage(), repository.NewMemoryOTPRepository(time.Now)
}

func (app *App) newDoctorRepository(log *logrus.Logger) domainRepo.DoctorRepository {
	if app.DB != nil {
		return repository.NewPostgresDoctorRepository(app.DB, log, entity.SeedDoctors())
	}
	return repository.NewSeedDoctorRepository(entity.SeedDoctors())
}

func newMailer(cfg *config.Config, log *logrus.Logger) domainGateway.MailDispatch {
	switch cfg.Mail.Driver {
	case config.MailDriverSMTP:
		return gateway.NewSMTPMailer(cfg.Mail, log)
	case config.MailDriverSendGrid:
		return gateway.NewSendGridMailer(cfg.Mail, log)
	default:
		return gateway.NewLogMailer(log, cfg.Mock.MailLatency)
	}
}

// newScheduler registers the idle workspace sweep
func newScheduler(cfg config.WorkspaceConfig, log *logrus.Logger, workspaces *service.WorkspaceRegistry, limiter *middleware.RateLimitMiddleware) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.SweepSchedule, func() {
		swept := workspaces.Sweep(cfg.IdleTimeout)
		pruned := limiter.Prune(cfg.IdleTimeout)
		log.Debugf("Idle sweep: %d workspaces, %d rate limiters", swept, pruned)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cfg.SweepSchedule, err)
	}
	return scheduler, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Scheduler.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections
func (app *App) Close() {
	if app.Scheduler != nil {
		<-app.Scheduler.Stop().Done()
	}

	if app.Workspaces != nil {
		app.Workspaces.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
