package operator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/memstore"
)

// adjustAction adds delta to an account and then returns the next scripted error.
type adjustAction struct {
	accountID int64
	delta     decimal.Decimal
	failures  []error
	attempts  atomic.Int32
}

func (a *adjustAction) Perform(ctx context.Context, writer *storage.Writer) error {
	n := int(a.attempts.Add(1)) - 1
	if err := writer.Accounts.AdjustBalance(ctx, a.accountID, a.delta); err != nil {
		return err
	}
	if n < len(a.failures) {
		return a.failures[n]
	}
	return nil
}

func newDelegator(t *testing.T, workers, retries int) (*OperatorDelegator, *memstore.Store, int64) {
	t.Helper()
	store := memstore.New()
	accountID := store.AddAccount(1, "Wallet", decimal.Zero)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	d := NewOperatorDelegator(store, workers, retries, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d, store, accountID
}

func balance(t *testing.T, store *memstore.Store, id int64) decimal.Decimal {
	t.Helper()
	a, err := store.Reader().Accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return a.Balance
}

func TestProcess_Commits(t *testing.T) {
	d, store, accountID := newDelegator(t, 2, 0)

	err := d.Process(context.Background(), &adjustAction{accountID: accountID, delta: decimal.NewFromInt(5)})
	require.NoError(t, err)

	assert.True(t, balance(t, store, accountID).Equal(decimal.NewFromInt(5)))
}

func TestProcess_RollsBackOnError(t *testing.T) {
	d, store, accountID := newDelegator(t, 1, 3)
	boom := errors.New("boom")
	action := &adjustAction{accountID: accountID, delta: decimal.NewFromInt(5), failures: []error{boom}}

	err := d.Process(context.Background(), action)

	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, action.attempts.Load(), "non-retryable errors are not retried")
	assert.True(t, balance(t, store, accountID).IsZero())
}

func TestProcess_RetriesTransientConflicts(t *testing.T) {
	d, store, accountID := newDelegator(t, 1, 3)
	action := &adjustAction{
		accountID: accountID,
		delta:     decimal.NewFromInt(5),
		failures:  []error{&pq.Error{Code: "40001"}, &pq.Error{Code: "40P01"}},
	}

	require.NoError(t, d.Process(context.Background(), action))

	assert.EqualValues(t, 3, action.attempts.Load())
	assert.True(t, balance(t, store, accountID).Equal(decimal.NewFromInt(5)), "only the successful attempt is applied")
}

func TestProcess_GivesUpAfterMaxRetries(t *testing.T) {
	d, store, accountID := newDelegator(t, 1, 1)
	conflict := &pq.Error{Code: "40001"}
	action := &adjustAction{
		accountID: accountID,
		delta:     decimal.NewFromInt(5),
		failures:  []error{conflict, conflict, conflict},
	}

	err := d.Process(context.Background(), action)

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.EqualValues(t, 2, action.attempts.Load())
	assert.True(t, balance(t, store, accountID).IsZero())
}

func TestProcess_CancelledContext(t *testing.T) {
	d, _, accountID := newDelegator(t, 1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &adjustAction{accountID: accountID, delta: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_ConcurrentCreatesConverge(t *testing.T) {
	d, store, accountID := newDelegator(t, 4, 2)
	categoryID := store.AddCategory(1, "Salary", category.OperationTypeIncome)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 40; i++ {
		g.Go(func() error {
			return d.Process(gctx, &actions.CreateTransaction{
				UserID:     1,
				AccountID:  accountID,
				CategoryID: categoryID,
				Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Amount:     decimal.NewFromInt(1),
			})
		})
	}
	require.NoError(t, g.Wait())

	assert.True(t, balance(t, store, accountID).Equal(decimal.NewFromInt(40)))
}
