package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/directory/api"
	"fyyur/internal/directory/db"
	"fyyur/internal/directory/service"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/notice"
	"fyyur/internal/sse"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func connectStore(ctx context.Context, cfg *config.Config, log *logger.Logger) *bun.DB {
	const maxRetries = 5

	var (
		bunDB *bun.DB
		err   error
	)
	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Connecting to %s (attempt %d/%d)", cfg.Database.Driver, i+1, maxRetries))
		bunDB, err = database.Open(ctx, cfg.Database)
		if err == nil {
			break
		}
		log.Error("DATABASE", err.Error())
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect after %d attempts: %v", maxRetries, err))
	}
	log.Info("DATABASE", fmt.Sprintf("%s connection successful", cfg.Database.Driver))
	return bunDB
}

// prepareSchema runs the SQL migrations on Postgres and creates the tables
// directly on the other drivers.
func prepareSchema(ctx context.Context, cfg *config.Config, bunDB *bun.DB, log *logger.Logger) error {
	if cfg.Database.Driver != database.DriverPostgres {
		return database.CreateSchema(ctx, bunDB)
	}
	if !cfg.Migrations.AutoMigrate {
		log.Info("MIGRATION", "Automatic migrations disabled")
		return nil
	}

	runner := migrations.NewRunner(migrations.Options{Dir: cfg.Migrations.Dir, DSN: cfg.Database.DSN()}, log)
	defer runner.Close()
	return runner.Up()
}

func noticeStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (notice.Store, func()) {
	if !cfg.Redis.Enabled {
		log.Info("NOTICE", "Redis disabled, keeping notices in memory")
		return notice.NewMemoryStore(cfg.Redis.NoticeTTL), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unavailable at %s, keeping notices in memory: %v", cfg.Redis.Addr, err))
		client.Close()
		return notice.NewMemoryStore(cfg.Redis.NoticeTTL), func() {}
	}
	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s (DB: %d)", cfg.Redis.Addr, cfg.Redis.DB))
	return notice.NewRedisStore(client, cfg.Redis.NoticeTTL), func() { client.Close() }
}

func changeFeed(cfg *config.Config, log *logger.Logger) publisher {
	if !cfg.Kafka.Enabled {
		log.Info("KAFKA", "Change feed disabled")
		return kafka.Nop{}
	}
	if !cfg.Kafka.MockMode {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.Topic}, log); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
	}
	log.Info("KAFKA", fmt.Sprintf("Publishing change events to %s (mock: %t)", cfg.Kafka.Topic, cfg.Kafka.MockMode))
	return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.MockMode, log)
}

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if envErr != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx := context.Background()
	bunDB := connectStore(ctx, cfg, log)
	defer bunDB.Close()

	if err := prepareSchema(ctx, cfg, bunDB, log); err != nil {
		log.Fatal("MIGRATION", fmt.Sprintf("Failed to prepare schema: %v", err))
	}

	notices, closeNotices := noticeStore(ctx, cfg, log)
	defer closeNotices()

	feed := changeFeed(cfg, log)
	defer feed.Close()

	stream := sse.NewBroadcaster()

	store := db.New(bunDB)
	svc := service.NewService(store, service.Publishers{feed, stream}, log)
	handler := api.NewHandler(svc, notices, store, log)
	handler.Stream = stream
	if cfg.Metrics.Enabled {
		handler.MetricsPath = cfg.Metrics.Path
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Fyyur listening on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("APP", "Shutting down")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Shutdown: %v", err))
	}
	log.Info("APP", "Shutdown complete")
}
