package service

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// LedgerService records transactions and keeps account balances in step with them.
type LedgerService struct {
	backend   storage.Backend
	processor actionProcessor
	publisher events.Publisher
	logger    *logrus.Logger
}

func NewLedgerService(backend storage.Backend, processor actionProcessor, publisher events.Publisher, logger *logrus.Logger) *LedgerService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &LedgerService{
		backend:   backend,
		processor: processor,
		publisher: publisher,
		logger:    logger,
	}
}

// Create posts tx for tx.UserID and returns the new transaction id.
func (s *LedgerService) Create(ctx context.Context, tx Transaction) (int64, error) {
	action := &actions.CreateTransaction{
		UserID:     tx.UserID,
		AccountID:  tx.AccountID,
		CategoryID: tx.CategoryID,
		Date:       tx.Date,
		Amount:     tx.Amount,
		Note:       tx.Note,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return 0, ledgererr.Storage(err)
	}

	s.publish(ctx, events.NewLedgerEvent(events.TransactionCreated, action.CreatedID, tx.UserID, action.AffectedAccountIDs...))
	return action.CreatedID, nil
}

// Update replaces the transaction tx.ID with tx. previousAmount and
// previousAccountID must be what was posted before this call.
func (s *LedgerService) Update(ctx context.Context, tx Transaction, previousAmount decimal.Decimal, previousAccountID int64) error {
	action := &actions.UpdateTransaction{
		ID:                tx.ID,
		UserID:            tx.UserID,
		AccountID:         tx.AccountID,
		CategoryID:        tx.CategoryID,
		Date:              tx.Date,
		Amount:            tx.Amount,
		Note:              tx.Note,
		PreviousAmount:    previousAmount,
		PreviousAccountID: previousAccountID,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return ledgererr.Storage(err)
	}

	s.publish(ctx, events.NewLedgerEvent(events.TransactionUpdated, tx.ID, tx.UserID, action.AffectedAccountIDs...))
	return nil
}

// Delete removes transaction id owned by userID and reverses its effect.
func (s *LedgerService) Delete(ctx context.Context, id, userID int64) error {
	action := &actions.DeleteTransaction{ID: id, UserID: userID}
	if err := s.processor.Process(ctx, action); err != nil {
		return ledgererr.Storage(err)
	}

	s.publish(ctx, events.NewLedgerEvent(events.TransactionDeleted, id, userID, action.AffectedAccountIDs...))
	return nil
}

// GetByID returns nil without error when userID has no transaction id.
func (s *LedgerService) GetByID(ctx context.Context, id, userID int64) (*Transaction, error) {
	row, err := s.backend.Reader().Transactions.FindByID(ctx, id, userID)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}
	if row == nil {
		return nil, nil
	}
	return transactionFromStorage(row), nil
}

// ListByAccount lists the transactions of one of userID's accounts within dates.
func (s *LedgerService) ListByAccount(ctx context.Context, accountID, userID int64, dates DateRange) ([]TransactionView, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}

	reader := s.backend.Reader()
	acc, err := reader.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}
	if acc == nil {
		return nil, ledgererr.NotFound("account %d", accountID)
	}
	if acc.UserID != userID {
		return nil, ledgererr.Forbidden("account %d", accountID)
	}

	rows, err := reader.Transactions.List(ctx, &transaction.Filter{
		UserID:    userID,
		AccountID: omit.From(accountID),
		Start:     dates.Start,
		End:       dates.End,
	})
	if err != nil {
		return nil, ledgererr.Storage(err)
	}
	return viewsFromStorage(rows), nil
}

// ListByUser lists all of userID's transactions within dates.
func (s *LedgerService) ListByUser(ctx context.Context, userID int64, dates DateRange) ([]TransactionView, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.backend.Reader().Transactions.List(ctx, &transaction.Filter{
		UserID: userID,
		Start:  dates.Start,
		End:    dates.End,
	})
	if err != nil {
		return nil, ledgererr.Storage(err)
	}
	return viewsFromStorage(rows), nil
}

// publish runs after commit. A lost event never undoes a posted mutation.
func (s *LedgerService) publish(ctx context.Context, event events.LedgerEvent) {
	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("publishMs")
	err := s.publisher.Publish(ctx, event)
	stopTimer()
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"kind":          event.Kind,
			"transactionID": event.TransactionID,
		}).Error("LedgerService.publish")
		logData.AddData("publishFailed", true)
	}
}
