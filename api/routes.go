package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/category"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/report"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

type registrar interface {
	Register(api huma.API)
}

// Handler builds the router: /status outside huma, every /v1 operation inside it.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Budget Ledger", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	for _, h := range []registrar{
		transaction.NewCreateTransactionHandler(r.Service.Ledger),
		transaction.NewUpdateTransactionHandler(r.Service.Ledger),
		transaction.NewDeleteTransactionHandler(r.Service.Ledger),
		transaction.NewGetTransactionHandler(r.Service.Ledger),
		transaction.NewListTransactionsHandler(r.Service.Ledger),
		report.NewMonthlyHandler(r.Service.Reports),
		report.NewWeeklyHandler(r.Service.Reports),
		account.NewListAccountsHandler(r.Service.Account),
		account.NewGetAccountHandler(r.Service.Account),
		category.NewListCategoriesHandler(r.Service.Category),
	} {
		h.Register(api)
	}

	return mux
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
