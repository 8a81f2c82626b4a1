package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blogist/blogapi/internal/blogservice"
	"github.com/blogist/blogapi/internal/common"
	"github.com/blogist/blogapi/internal/statservice"
	"github.com/blogist/blogapi/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
	statService *statservice.StatService
	publisher   *common.EventPublisher
	metrics     *common.HTTPMetrics
}

func main() {
	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := common.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	dsn := common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	if cfg.DBAutoMigrate {
		m, err := common.Migrate(dsn)
		if err != nil {
			logger.Error("failed to migrate the database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		m.Close()
	}

	// Initialize the database
	db, err := common.NewDB(dsn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	var producer common.MessageProducer = common.NopBroker{}
	var consumer common.MessageConsumer = common.NopBroker{}

	if cfg.MQHost != "" {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
		broker, err := common.NewMessageBroker(URI)
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupExchanges(broker)
		if err != nil {
			logger.Error("failed to setup the exchanges", slog.String("error", err.Error()))
			os.Exit(1)
		}

		producer, consumer = broker, broker
	} else {
		logger.Warn("RABBITMQ_HOST is empty, running without events")
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	publisher := common.NewEventPublisher(producer, logger)
	blogService := blogservice.NewBlogService(db, publisher)

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL), cache, publisher),
		blogService: blogService,
		statService: statservice.NewStatService(blogService, consumer, cache, cfg.StatsCacheTTL, logger),
		publisher:   publisher,
		metrics:     common.NewHTTPMetrics(),
	}

	// Initialize the consumer
	err = app.statService.WatchBlogEvents()
	if err != nil {
		logger.Error("failed to watch blog events", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
