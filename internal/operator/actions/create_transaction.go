package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// CreateTransaction posts a new transaction and applies its effect to the account.
type CreateTransaction struct {
	UserID     int64
	AccountID  int64
	CategoryID int64
	Date       time.Time
	Amount     decimal.Decimal
	Note       string

	// Set by a successful Perform.
	CreatedID          int64
	AffectedAccountIDs []int64
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	c.CreatedID = 0

	if err := validateAmount(c.Amount); err != nil {
		return err
	}
	if err := lockOwnedAccounts(ctx, writer.Accounts, c.UserID, c.AccountID); err != nil {
		return err
	}
	cat, err := ownedCategory(ctx, category.NewMemo(writer.Categories), c.CategoryID, c.UserID)
	if err != nil {
		return err
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:     c.UserID,
		AccountID:  c.AccountID,
		CategoryID: c.CategoryID,
		Date:       transaction.DateOnly(c.Date),
		Amount:     c.Amount,
		Note:       c.Note,
	})
	if err != nil {
		return ledgererr.Storage(err)
	}

	deltas := balanceDeltas{}
	deltas.add(c.AccountID, cat.OperationType.Effect(c.Amount))
	if err := deltas.apply(ctx, writer.Accounts); err != nil {
		return err
	}

	c.CreatedID = id
	c.AffectedAccountIDs = deltas.accountIDs()
	return nil
}
