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

// UpdateTransaction overwrites a posted transaction. PreviousAmount and
// PreviousAccountID describe what was posted before and are trusted as given;
// the reversal sign comes from the category stored on the row.
type UpdateTransaction struct {
	ID         int64
	UserID     int64
	AccountID  int64
	CategoryID int64
	Date       time.Time
	Amount     decimal.Decimal
	Note       string

	PreviousAmount    decimal.Decimal
	PreviousAccountID int64

	// Set by a successful Perform.
	AffectedAccountIDs []int64
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	stored, err := writer.Transactions.FindByIDForUpdate(ctx, u.ID, u.UserID)
	if err != nil {
		return ledgererr.Storage(err)
	}
	if stored == nil {
		return ledgererr.NotFound("transaction %d", u.ID)
	}

	if err := validateAmount(u.Amount); err != nil {
		return err
	}
	if err := validateScale(u.PreviousAmount); err != nil {
		return err
	}
	if err := lockOwnedAccounts(ctx, writer.Accounts, u.UserID, u.PreviousAccountID, u.AccountID); err != nil {
		return err
	}

	categories := category.NewMemo(writer.Categories)
	oldCategory, err := categories.FindByID(ctx, stored.CategoryID)
	if err != nil {
		return ledgererr.Storage(err)
	}
	if oldCategory == nil {
		return ledgererr.NotFound("category %d", stored.CategoryID)
	}
	newCategory, err := ownedCategory(ctx, categories, u.CategoryID, u.UserID)
	if err != nil {
		return err
	}

	deltas := balanceDeltas{}
	deltas.add(u.PreviousAccountID, oldCategory.OperationType.Effect(u.PreviousAmount).Neg())
	deltas.add(u.AccountID, newCategory.OperationType.Effect(u.Amount))
	if err := deltas.apply(ctx, writer.Accounts); err != nil {
		return err
	}

	err = writer.Transactions.Update(ctx, &transaction.TransactionUpdate{
		ID:         u.ID,
		AccountID:  u.AccountID,
		CategoryID: u.CategoryID,
		Date:       transaction.DateOnly(u.Date),
		Amount:     u.Amount,
		Note:       u.Note,
	})
	if err != nil {
		return ledgererr.Storage(err)
	}

	u.AffectedAccountIDs = deltas.accountIDs()
	return nil
}
