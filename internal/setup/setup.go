package setup

import (
	"context"
	"log"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database"
	"github.com/pobredward/inschoolz-moderation/internal/database/dbretry"
	"github.com/pobredward/inschoolz-moderation/internal/notify"
	"github.com/pobredward/inschoolz-moderation/internal/redis"
	"github.com/pobredward/inschoolz-moderation/internal/setup/config"
	"github.com/pobredward/inschoolz-moderation/internal/setup/telemetry"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config     // Application configuration
	Logger       *zap.Logger        // Main application logger
	DBLogger     *zap.Logger        // Database-specific logger
	DB           database.Client    // Database connection pool
	RedisManager *redis.Manager     // Redis connection manager
	StatusClient rueidis.Client     // Redis client for worker status reporting
	Notifier     notify.Notifier    // Notification queue producer
	LogManager   *telemetry.Manager // Log management system
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
// Workers can provide type and ID information for service identification.
func InitializeApp(
	ctx context.Context, serviceType telemetry.ServiceType, logDir string, workerInfo ...string,
) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Retry backoff applies to every database operation from here on
	dbretry.Configure(
		cfg.Common.Retry.MaxRetries,
		time.Duration(cfg.Common.Retry.Delay)*time.Millisecond,
		time.Duration(cfg.Common.Retry.MaxDelay)*time.Millisecond,
	)

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug, workerInfo...)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	// Redis manager provides connection pools for various subsystems
	redisManager := redis.NewManager(&cfg.Common.Redis, logger)

	// Suspension notices go to the queue the notification service consumes
	var notifier notify.Notifier = notify.NopNotifier{}

	if cfg.Common.Notifications.Enabled {
		notifyClient, err := redisManager.GetClient(redis.NotificationDBIndex)
		if err != nil {
			return nil, err
		}

		notifier = notify.NewRedisNotifier(notifyClient, cfg.Common.Notifications.QueueKey, logger)
	}

	// Initialize database with automatic migrations
	db, err := database.NewConnection(
		ctx, &cfg.Common.PostgreSQL, &cfg.Common.Moderation,
		notifier, dbLogger.Named("database"), true,
	)
	if err != nil {
		return nil, err
	}

	// Get Redis client for worker status reporting
	statusClient, err := redisManager.GetClient(redis.WorkerStatusDBIndex)
	if err != nil {
		return nil, err
	}

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
		StatusClient: statusClient,
		Notifier:     notifier,
		LogManager:   logManager,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(context.Context) {
	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}
