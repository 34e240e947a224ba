package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/energymanager/internal/api"
	"example.com/energymanager/internal/config"
	"example.com/energymanager/internal/domain"
	"example.com/energymanager/internal/events"
	"example.com/energymanager/internal/logging"
	"example.com/energymanager/internal/persistence/postgres"
	"example.com/energymanager/internal/persistence/sqlite"
	httptransport "example.com/energymanager/internal/transport/http"
)

func main() {
	config.LoadDotenv(logging.Logger)
	cfg := config.Load()
	logging.Init(cfg.LogLevel)
	log := logging.Logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store domain.Store
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()

		pgStore, err := postgres.NewStore(ctx, pool)
		if err != nil {
			log.WithError(err).Fatal("failed to prepare postgres store")
		}
		store = pgStore
		log.WithField("url", cfg.PostgresURL).Info("using postgres store")
	} else {
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.WithError(err).Fatal("failed to open sqlite store")
		}
		defer sqliteStore.Close()
		store = sqliteStore
		log.WithField("path", cfg.SQLitePath).Info("using embedded sqlite store")
	}

	var publisher domain.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.WithField("topic", cfg.EventsTopic).Info("event publishing enabled")
	}

	service := domain.NewService(store, publisher, log)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// CORS so the chart frontend can call the API from another origin.
	cors := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Infof("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, logger(cors(mux)))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("energy-manager listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
	}
}
