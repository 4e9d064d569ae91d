package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-ledger/api"
	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/memstore"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := envConfig.Validate(); err != nil {
		logrus.WithError(err).Fatal("config.Validate")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("budget-ledger starting")

	backend, closeBackend, err := openBackend(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("openBackend")
		return
	}
	defer closeBackend()

	publisher, err := openPublisher(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("openPublisher")
		return
	}
	defer publisher.Close()

	delegator := operator.NewOperatorDelegator(backend, envConfig.OperatorWorkers, envConfig.OperatorMaxRetries, logger)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(backend, delegator, publisher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
		}
		return httpRest.Serve(groupCtx)
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("budget-ledger stopped with error")
		return
	}
	logger.Info("budget-ledger stopped")
}

func openBackend(env *config.Config, logger *logrus.Logger) (storage.Backend, func(), error) {
	if env.DataBackend == config.BackendMemory {
		logger.Warn("using in-memory backend, data is lost on exit")
		return memstore.New(), func() {}, nil
	}

	dbStorage, err := storage.NewStorage(env)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.RunMigrations(dbStorage.DB); err != nil {
		_ = dbStorage.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := dbStorage.Close(); err != nil {
			logger.WithError(err).Error("storage.Close")
		}
	}
	return dbStorage, closeFn, nil
}

func openPublisher(env *config.Config, logger *logrus.Logger) (events.Publisher, error) {
	if env.AMQPURL == "" {
		logger.Info("AMQP_URL not set, ledger events are not published")
		return events.NoopPublisher{}, nil
	}
	return events.NewAMQPPublisher(env.AMQPURL, env.AMQPExchange, logger)
}
