// Command feedtail prints the directory change feed as it arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fyyur/internal/config"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

func main() {
	group := flag.String("group", "fyyur-feedtail", "consumer group id")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, *group, log)
	defer consumer.Close()

	log.Info("KAFKA", fmt.Sprintf("Following %s as %s", cfg.Kafka.Topic, *group))
	err = consumer.Run(ctx, func(e models.ChangeEvent) error {
		log.LogKafka("RECEIVE", cfg.Kafka.Topic, fmt.Sprintf("%s %s at %s", e.Type, e.Key(), e.OccurredAt.Format("2006-01-02T15:04:05Z")))
		return nil
	})
	if err != nil {
		log.Error("KAFKA", err.Error())
		os.Exit(1)
	}
}
