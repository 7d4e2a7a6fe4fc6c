package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jimiolaniyan/accounts"
	"github.com/jimiolaniyan/accounts/config"
	"github.com/jimiolaniyan/accounts/logging"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("account store ready", zap.String("driver", cfg.StoreDriver))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var svc accounts.Service
	svc = accounts.NewService(repo)
	svc = accounts.NewLoggingService(logger, svc)
	svc = accounts.NewInstrumentingService(accounts.NewServiceMetrics(reg), svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           accounts.MakeHandler(svc, logger, accounts.NewHTTPMetrics(reg), reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore acquires the configured account store. The returned func
// releases it and is safe to call once the server has stopped.
func openStore(ctx context.Context, cfg *config.Config) (accounts.Repository, func(), error) {
	switch cfg.StoreDriver {
	case accounts.DriverMemory:
		return accounts.NewAccountRepository(), func() {}, nil

	case accounts.DriverSQLite, accounts.DriverPostgres:
		db, err := accounts.OpenSQL(ctx, cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() { _ = db.Close() }
		if cfg.StoreDriver == accounts.DriverSQLite {
			return accounts.NewSQLiteRepository(db), closeDB, nil
		}
		return accounts.NewPostgresRepository(db), closeDB, nil

	case accounts.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		disconnect := func() { _ = client.Disconnect(context.Background()) }

		if err := client.Ping(connectCtx, nil); err != nil {
			disconnect()
			return nil, nil, fmt.Errorf("mongo ping: %w", err)
		}

		db := client.Database(cfg.MongoDatabase)
		if err := accounts.EnsureMongoIndexes(connectCtx, db); err != nil {
			disconnect()
			return nil, nil, err
		}
		return accounts.NewMongoAccountRepository(db), disconnect, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
