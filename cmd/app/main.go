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

	"valet/cmd"
	valethttp "valet/internal/adapters/in/http"
	"valet/internal/adapters/out/kafka"
	"valet/internal/adapters/out/memory"
	"valet/internal/adapters/out/metrics"
	"valet/internal/adapters/out/notify"
	"valet/internal/adapters/out/postgres"
	valetredis "valet/internal/adapters/out/redis"
	"valet/internal/adapters/out/redis/transactionrepo"
	"valet/internal/core/ports"
	"valet/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(config.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err = run(config, log); err != nil {
		log.Fatal("valet stopped", zap.Error(err))
	}
}

func run(config cmd.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	uowFactory, transactions, closeStores, err := openStores(ctx, config, log)
	if err != nil {
		return err
	}
	defer closeStores()

	var publisher ports.StatusChangeNotifier
	if len(config.KafkaBrokers) > 0 {
		p := kafka.NewStatusPublisher(kafka.Config{
			Brokers: config.KafkaBrokers,
			Topic:   config.KafkaOrderChangedTopic,
		}, log)
		defer func() { _ = p.Close() }()
		publisher = p
	}
	notifier := notify.NewFanout(log, metrics.NewTransitionCounter(registry), publisher)

	app := cmd.NewCompositionRoot(config, uowFactory, transactions, notifier, log)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := valethttp.NewRouter(app.CreateHTTPServer(), registry, log)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("port", config.HTTPPort))
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStores connects the remote order store and the local transaction
// mirror for the configured backend.
func openStores(
	ctx context.Context,
	config cmd.Config,
	log *zap.Logger,
) (ports.UnitOfWorkFactory, ports.TransactionRepository, func(), error) {
	if config.StorageBackend == cmd.StorageBackendMemory {
		log.Warn("using in-memory stores; data is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewOrderStore()), memory.NewTransactionStore(), func() {}, nil
	}

	db, err := postgres.Open(postgres.Config{
		Host:     config.DBHost,
		Port:     config.DBPort,
		User:     config.DBUser,
		Password: config.DBPassword,
		Name:     config.DBName,
		SSLMode:  config.DBSslMode,
		Driver:   config.DBDriver,
	}, log.With(zap.String("component", "gorm")))
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := valetredis.NewClient(ctx, valetredis.Config{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, nil, err
	}

	closeStores := func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Error("failed to close redis client", zap.Error(closeErr))
		}
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Error("failed to close database", zap.Error(closeErr))
		}
	}

	return postgres.NewGormUnitOfWorkFactory(db), transactionrepo.NewRedisTransactionRepository(client), closeStores, nil
}
