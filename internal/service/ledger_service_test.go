package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/ledgererr"
)

func TestCreate_UpdatesBalanceAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.LedgerEvent) bool {
		return e.Kind == events.TransactionCreated && e.UserID == userID && len(e.AccountIDs) == 1 && e.AccountIDs[0] == env.wallet
	})).Return(nil).Once()
	env.svc.Ledger.publisher = publisher

	id := env.create(t, env.wallet, env.groceries, date(2024, 2, 3), "19.99")

	assert.NotZero(t, id)
	assert.True(t, env.balance(t, env.wallet).Equal(dec("-19.99")))
	publisher.AssertExpectations(t)
}

func TestCreate_PublishFailureDoesNotUndoCommit(t *testing.T) {
	env := newTestEnv(t)
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	env.svc.Ledger.publisher = publisher

	id := env.create(t, env.wallet, env.salary, date(2024, 2, 3), "10")

	got, err := env.svc.Ledger.GetByID(context.Background(), id, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, env.balance(t, env.wallet).Equal(dec("10")))
}

func TestCreate_ErrorKinds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Ledger.Create(ctx, Transaction{UserID: userID, AccountID: env.wallet, CategoryID: env.salary, Date: date(2024, 1, 1), Amount: dec("0")})
	assert.ErrorIs(t, err, ledgererr.ErrInvalid)

	_, err = env.svc.Ledger.Create(ctx, Transaction{UserID: userID, AccountID: env.otherAccount, CategoryID: env.salary, Date: date(2024, 1, 1), Amount: dec("1")})
	assert.ErrorIs(t, err, ledgererr.ErrForbidden)

	_, err = env.svc.Ledger.Create(ctx, Transaction{UserID: userID, AccountID: 404, CategoryID: env.salary, Date: date(2024, 1, 1), Amount: dec("1")})
	assert.ErrorIs(t, err, ledgererr.ErrNotFound)

	env.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdate_MoveBetweenAccounts(t *testing.T) {
	env := newTestEnv(t)
	id := env.create(t, env.wallet, env.groceries, date(2024, 3, 1), "30")

	err := env.svc.Ledger.Update(context.Background(), Transaction{
		ID: id, UserID: userID, AccountID: env.bank, CategoryID: env.groceries, Date: date(2024, 3, 1), Amount: dec("30"),
	}, dec("30"), env.wallet)
	require.NoError(t, err)

	assert.True(t, env.balance(t, env.wallet).IsZero())
	assert.True(t, env.balance(t, env.bank).Equal(dec("-30")))
	env.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.LedgerEvent) bool {
		return e.Kind == events.TransactionUpdated && assert.ObjectsAreEqual([]int64{env.wallet, env.bank}, e.AccountIDs)
	}))
}

func TestUpdate_OverwritesFields(t *testing.T) {
	env := newTestEnv(t)
	id := env.create(t, env.wallet, env.groceries, date(2024, 3, 1), "30")

	require.NoError(t, env.svc.Ledger.Update(context.Background(), Transaction{
		ID: id, UserID: userID, AccountID: env.wallet, CategoryID: env.rent, Date: date(2024, 3, 2), Amount: dec("45.50"), Note: "march",
	}, dec("30"), env.wallet))

	got, err := env.svc.Ledger.GetByID(context.Background(), id, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, env.rent, got.CategoryID)
	assert.Equal(t, date(2024, 3, 2), got.Date)
	assert.True(t, got.Amount.Equal(dec("45.50")))
	assert.Equal(t, "march", got.Note)
	assert.Equal(t, OperationTypeExpense, got.OperationType)
	assert.True(t, env.balance(t, env.wallet).Equal(dec("-45.50")))
}

func TestUpdate_ForeignTransaction(t *testing.T) {
	env := newTestEnv(t)
	id := env.create(t, env.wallet, env.groceries, date(2024, 3, 1), "30")

	err := env.svc.Ledger.Update(context.Background(), Transaction{
		ID: id, UserID: otherUserID, AccountID: env.otherAccount, CategoryID: env.groceries, Date: date(2024, 3, 1), Amount: dec("1"),
	}, dec("30"), env.otherAccount)

	assert.ErrorIs(t, err, ledgererr.ErrNotFound)
	assert.True(t, env.balance(t, env.wallet).Equal(dec("-30")))
}

func TestDelete_ThenRecreateRestoresBalance(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, env.wallet, env.salary, date(2024, 4, 1), "500")
	id := env.create(t, env.wallet, env.rent, date(2024, 4, 2), "320")
	before := env.balance(t, env.wallet)

	require.NoError(t, env.svc.Ledger.Delete(context.Background(), id, userID))
	assert.True(t, env.balance(t, env.wallet).Equal(dec("500")))

	env.create(t, env.wallet, env.rent, date(2024, 4, 2), "320")
	assert.True(t, env.balance(t, env.wallet).Equal(before))
}

func TestDelete_MissingOrForeign(t *testing.T) {
	env := newTestEnv(t)
	id := env.create(t, env.wallet, env.rent, date(2024, 4, 2), "320")

	assert.ErrorIs(t, env.svc.Ledger.Delete(context.Background(), id, otherUserID), ledgererr.ErrNotFound)
	assert.ErrorIs(t, env.svc.Ledger.Delete(context.Background(), 9999, userID), ledgererr.ErrNotFound)
}

func TestGetByID_ScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	id := env.create(t, env.wallet, env.salary, date(2024, 4, 1), "5")

	got, err := env.svc.Ledger.GetByID(context.Background(), id, otherUserID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = env.svc.Ledger.GetByID(context.Background(), id, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, OperationTypeIncome, got.OperationType)
}

func TestListByUser_SortedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	first := env.create(t, env.wallet, env.groceries, date(2024, 5, 10), "1")
	second := env.create(t, env.bank, env.salary, date(2024, 5, 1), "2")
	third := env.create(t, env.wallet, env.rent, date(2024, 5, 10), "3")
	env.create(t, env.wallet, env.rent, date(2024, 6, 1), "4")

	views, err := env.svc.Ledger.ListByUser(context.Background(), userID, DateRange{Start: date(2024, 5, 1), End: date(2024, 5, 31)})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []int64{first, third, second}, []int64{views[0].ID, views[1].ID, views[2].ID})
	for i := 1; i < len(views); i++ {
		assert.False(t, views[i].Date.After(views[i-1].Date))
	}
	assert.Equal(t, "Groceries", views[0].CategoryName)
	assert.Equal(t, "Bank", views[2].AccountName)
}

func TestListByAccount(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, env.wallet, env.groceries, date(2024, 5, 10), "1")
	bankID := env.create(t, env.bank, env.salary, date(2024, 5, 1), "2")
	may := DateRange{Start: date(2024, 5, 1), End: date(2024, 5, 31)}

	views, err := env.svc.Ledger.ListByAccount(context.Background(), env.bank, userID, may)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, bankID, views[0].ID)

	_, err = env.svc.Ledger.ListByAccount(context.Background(), env.otherAccount, userID, may)
	assert.ErrorIs(t, err, ledgererr.ErrForbidden)

	_, err = env.svc.Ledger.ListByAccount(context.Background(), 404, userID, may)
	assert.ErrorIs(t, err, ledgererr.ErrNotFound)
}

func TestListByUser_InvalidRange(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Ledger.ListByUser(context.Background(), userID, DateRange{Start: date(2024, 5, 2), End: date(2024, 5, 1)})
	assert.ErrorIs(t, err, ledgererr.ErrInvalid)

	_, err = env.svc.Ledger.ListByUser(context.Background(), userID, DateRange{End: date(2024, 5, 1)})
	assert.ErrorIs(t, err, ledgererr.ErrInvalid)
}

type posted struct {
	accountID  int64
	categoryID int64
	amount     decimal.Decimal
}

// Replaying random create/update/delete sequences keeps every balance equal
// to the sum of the effects of the transactions currently posted to it.
func TestLedger_RandomReplayKeepsBalances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := rand.New(rand.NewPCG(2024, 1))

	accounts := []int64{env.wallet, env.bank}
	categories := []int64{env.salary, env.groceries, env.rent}
	sign := map[int64]decimal.Decimal{
		env.salary:    decimal.NewFromInt(1),
		env.groceries: decimal.NewFromInt(-1),
		env.rent:      decimal.NewFromInt(-1),
	}
	live := map[int64]posted{}
	var ids []int64

	randomAmount := func() decimal.Decimal { return decimal.New(int64(r.IntN(100000)+1), -2) }

	for step := 0; step < 300; step++ {
		switch op := r.IntN(3); {
		case op == 0 || len(ids) == 0:
			p := posted{accountID: accounts[r.IntN(2)], categoryID: categories[r.IntN(3)], amount: randomAmount()}
			id, err := env.svc.Ledger.Create(ctx, Transaction{UserID: userID, AccountID: p.accountID, CategoryID: p.categoryID, Date: date(2024, 1, 1+r.IntN(28)), Amount: p.amount})
			require.NoError(t, err)
			live[id] = p
			ids = append(ids, id)
		case op == 1:
			id := ids[r.IntN(len(ids))]
			prev := live[id]
			next := posted{accountID: accounts[r.IntN(2)], categoryID: categories[r.IntN(3)], amount: randomAmount()}
			err := env.svc.Ledger.Update(ctx, Transaction{ID: id, UserID: userID, AccountID: next.accountID, CategoryID: next.categoryID, Date: date(2024, 2, 1), Amount: next.amount}, prev.amount, prev.accountID)
			require.NoError(t, err)
			live[id] = next
		default:
			i := r.IntN(len(ids))
			require.NoError(t, env.svc.Ledger.Delete(ctx, ids[i], userID))
			delete(live, ids[i])
			ids = append(ids[:i], ids[i+1:]...)
		}
	}

	want := map[int64]decimal.Decimal{env.wallet: decimal.Zero, env.bank: decimal.Zero}
	for _, p := range live {
		want[p.accountID] = want[p.accountID].Add(p.amount.Mul(sign[p.categoryID]))
	}
	for _, accountID := range accounts {
		assert.True(t, env.balance(t, accountID).Equal(want[accountID]), "account %d: got %s want %s", accountID, env.balance(t, accountID), want[accountID])
	}
}

func TestLedger_ConcurrentUpdatesConverge(t *testing.T) {
	env := newTestEnv(t)
	first := env.create(t, env.wallet, env.groceries, date(2024, 1, 1), "10")
	second := env.create(t, env.wallet, env.groceries, date(2024, 1, 1), "10")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range []int64{first, second} {
		g.Go(func() error {
			previous := dec("10")
			for i := 1; i <= 25; i++ {
				next := decimal.NewFromInt(int64(10 + i))
				err := env.svc.Ledger.Update(gctx, Transaction{
					ID: id, UserID: userID, AccountID: env.wallet, CategoryID: env.groceries, Date: date(2024, 1, 1), Amount: next,
				}, previous, env.wallet)
				if err != nil {
					return err
				}
				previous = next
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.True(t, env.balance(t, env.wallet).Equal(dec("-70")))
}
