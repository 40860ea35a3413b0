package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Golffzza/wellness-server/internal/app"
	"github.com/Golffzza/wellness-server/internal/bot"
	"github.com/Golffzza/wellness-server/internal/catalog"
	"github.com/Golffzza/wellness-server/internal/clock"
	"github.com/Golffzza/wellness-server/internal/config"
	"github.com/Golffzza/wellness-server/internal/notify"
	"github.com/Golffzza/wellness-server/internal/storage/postgres"
	"github.com/Golffzza/wellness-server/migrations"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatalf("TELEGRAM_TOKEN is required for the bot")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	cat, err := catalog.Default(cfg.SlotCapacity)
	if err != nil {
		log.Fatalf("build catalog: %v", err)
	}

	store := postgres.NewBookingRepository(pool)
	svc := app.NewReservationService(store, cat, notify.NewLogDispatcher(logger), clock.NewSystem())

	b, err := bot.New(cfg.TelegramToken, svc, logger)
	if err != nil {
		log.Fatalf("start bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("bot polling for updates")
	b.Run(ctx)
	log.Printf("bot stopped")
}
