package service

import (
	"context"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
)

func TestListAccounts_OnlyOwnSortedByName(t *testing.T) {
	env := newTestEnv(t)

	accounts, err := env.svc.Account.ListAccounts(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Bank", accounts[0].Name)
	assert.Equal(t, "Wallet", accounts[1].Name)
}

func TestListAccounts_NoneIsEmptyNotNil(t *testing.T) {
	env := newTestEnv(t)

	accounts, err := env.svc.Account.ListAccounts(context.Background(), 77)
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestGetAccount_ErrorKinds(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Account.GetAccount(context.Background(), 404, userID)
	assert.ErrorIs(t, err, ledgererr.ErrNotFound)

	_, err = env.svc.Account.GetAccount(context.Background(), env.otherAccount, userID)
	assert.ErrorIs(t, err, ledgererr.ErrForbidden)

	account, err := env.svc.Account.GetAccount(context.Background(), env.wallet, userID)
	require.NoError(t, err)
	assert.Equal(t, "Wallet", account.Name)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	all, err := env.svc.Category.ListCategories(context.Background(), userID, omit.Val[OperationType]{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Groceries", "Rent", "Salary"}, []string{all[0].Name, all[1].Name, all[2].Name})

	income, err := env.svc.Category.ListCategories(context.Background(), userID, omit.From(OperationTypeIncome))
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, env.salary, income[0].ID)
}

func TestParseOperationType(t *testing.T) {
	got, err := ParseOperationType("Expense")
	require.NoError(t, err)
	assert.Equal(t, OperationTypeExpense, got)
	assert.Equal(t, "expense", got.String())

	_, err = ParseOperationType("transfer")
	assert.Error(t, err)
}
