package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Golffzza/wellness-server/internal/config"
	"github.com/Golffzza/wellness-server/internal/notifier"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatalf("AMQP_URL is required for the notifier")
	}

	var n notifier.Notifier
	if cfg.TelegramToken != "" {
		tg, err := notifier.NewTelegram(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("telegram notifier: %v", err)
		}
		n = tg
	} else {
		logger.Printf("WARN: TELEGRAM_TOKEN not set, confirmations go to the log")
		n = notifier.NewConsole(logger)
	}

	consumer, err := notifier.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange, cfg.NotifyQueue, n, logger)
	if err != nil {
		log.Fatalf("connect to broker: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("notifier consuming queue %s", cfg.NotifyQueue)
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Printf("notifier stopped")
}
