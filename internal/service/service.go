package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// actionProcessor runs a ledger action in its own unit of work.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Ledger   *LedgerService
	Reports  *ReportService
	Account  *AccountService
	Category *CategoryService
}

// NewService wires every service to the same backend. Mutations go through
// processor; reads use the backend's reader directly.
func NewService(backend storage.Backend, processor actionProcessor, publisher events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		Ledger:   NewLedgerService(backend, processor, publisher, logger),
		Reports:  NewReportService(backend),
		Account:  NewAccountService(backend),
		Category: NewCategoryService(backend),
	}
}
