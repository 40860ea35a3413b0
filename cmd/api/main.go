package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Golffzza/wellness-server/internal/app"
	"github.com/Golffzza/wellness-server/internal/catalog"
	"github.com/Golffzza/wellness-server/internal/clock"
	"github.com/Golffzza/wellness-server/internal/config"
	"github.com/Golffzza/wellness-server/internal/metrics"
	"github.com/Golffzza/wellness-server/internal/notify"
	"github.com/Golffzza/wellness-server/internal/storage/postgres"
	transporthttp "github.com/Golffzza/wellness-server/internal/transport/http"
	"github.com/Golffzza/wellness-server/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
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

	cat, err := buildCatalog(cfg, logger)
	if err != nil {
		log.Fatalf("build catalog: %v", err)
	}

	dispatcher, closeDispatcher := buildDispatcher(cfg, logger)
	defer closeDispatcher()

	store := postgres.NewBookingRepository(pool)
	svc := app.NewReservationService(store, cat, dispatcher, clock.NewSystem())
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/slots", transporthttp.HandleSlots(svc))
	mux.Handle("/book", transporthttp.HandleBook(svc, m))
	mux.Handle("/my-bookings", transporthttp.HandleMyBookings(svc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOriginList(), mux), logger, m)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	log.Printf("api listening on %s", cfg.HTTPAddr)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

func buildCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	if cfg.SlotsFile != "" {
		return catalog.LoadFile(cfg.SlotsFile, cfg.SlotCapacity)
	}
	logger.Printf("WARN: SLOTS_FILE not set, using built-in schedule")
	return catalog.Default(cfg.SlotCapacity)
}

func buildDispatcher(cfg config.Config, logger *log.Logger) (app.NotificationDispatcher, func()) {
	if cfg.AMQPURL == "" {
		logger.Printf("WARN: AMQP_URL not set, confirmations go to the log")
		return notify.NewLogDispatcher(logger), func() {}
	}
	d, err := notify.NewAMQPDispatcher(cfg.AMQPURL, cfg.AMQPExchange, logger)
	if err != nil {
		log.Fatalf("connect to broker: %v", err)
	}
	return d, func() { _ = d.Close() }
}
