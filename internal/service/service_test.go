package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/operator"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/memstore"
)

const (
	userID      int64 = 1
	otherUserID int64 = 2
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type testEnv struct {
	svc       *Service
	store     *memstore.Store
	publisher *mockPublisher

	wallet       int64
	bank         int64
	otherAccount int64
	salary       int64
	groceries    int64
	rent         int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.New()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	delegator := operator.NewOperatorDelegator(store, 4, 2, logger)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	return &testEnv{
		svc:          NewService(store, delegator, publisher, logger),
		store:        store,
		publisher:    publisher,
		wallet:       store.AddAccount(userID, "Wallet", decimal.Zero),
		bank:         store.AddAccount(userID, "Bank", decimal.Zero),
		otherAccount: store.AddAccount(otherUserID, "Someone else", decimal.Zero),
		salary:       store.AddCategory(userID, "Salary", category.OperationTypeIncome),
		groceries:    store.AddCategory(userID, "Groceries", category.OperationTypeExpense),
		rent:         store.AddCategory(userID, "Rent", category.OperationTypeExpense),
	}
}

func (e *testEnv) balance(t *testing.T, accountID int64) decimal.Decimal {
	t.Helper()
	account, err := e.svc.Account.GetAccount(context.Background(), accountID, userID)
	require.NoError(t, err)
	return account.Balance
}

func (e *testEnv) create(t *testing.T, accountID, categoryID int64, date time.Time, amount string) int64 {
	t.Helper()
	id, err := e.svc.Ledger.Create(context.Background(), Transaction{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Date:       date,
		Amount:     decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
	return id
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
