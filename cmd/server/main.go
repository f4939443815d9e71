/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the rent ledger server: configuration, logging,
  SQLite store, domain services, daily contract expiry sweep, HTTP
  router, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load config (env / .env), parse flag overrides
  2. Initialize logrus and the SQLite store
  3. Open services (contracts load runs the expiry sweep once)
  4. Schedule the daily expiry sweep
  5. Start the HTTP server with graceful shutdown

CONFIGURATION:
  PORT          HTTP server port (default 8080)
  DB_PATH       SQLite database path (default rent.db, ":memory:" works)
  LOG_LEVEL     logrus level (default info)
  CORS_ORIGINS  comma-separated allowed origins (default the server's own)
  Flags -port and -db override the environment.

EXPIRY SWEEP:
  Contract statuses depend on the current date: a contract whose end
  date has passed must flip to Completed even if nobody touches it.
  The sweep runs once at startup and every midnight thereafter.
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/rentfold/ledger-engine/api"
	"github.com/rentfold/ledger-engine/config"
	"github.com/rentfold/ledger-engine/ledger"
	"github.com/rentfold/ledger-engine/rental"
	"github.com/rentfold/ledger-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	contracts, err := rental.OpenContractService(ctx, store, ledger.Today(), log)
	if err != nil {
		log.Fatalf("failed to load contracts: %v", err)
	}
	tenants, err := rental.OpenTenantService(ctx, store, contracts, log)
	if err != nil {
		log.Fatalf("failed to load tenants: %v", err)
	}
	landlords, err := rental.OpenLandlordService(ctx, store, contracts, log)
	if err != nil {
		log.Fatalf("failed to load landlords: %v", err)
	}
	properties, err := rental.OpenPropertyService(ctx, store, contracts, log)
	if err != nil {
		log.Fatalf("failed to load properties: %v", err)
	}
	paymentLedger, err := ledger.OpenPaymentLedger(ctx, store)
	if err != nil {
		log.Fatalf("failed to load payments: %v", err)
	}
	payments := rental.NewPaymentService(paymentLedger, contracts, tenants, properties, log)

	// Daily sweep: flip contracts past their end date to Completed.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@midnight", func() {
		if _, err := contracts.RefreshExpired(context.Background(), ledger.Today()); err != nil {
			log.WithError(err).Error("expiry sweep failed")
		}
	}); err != nil {
		log.Fatalf("failed to schedule expiry sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(tenants, landlords, properties, contracts, payments, log)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", *port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server stopped")
}
