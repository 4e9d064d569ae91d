package actions

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// DeleteTransaction removes a transaction and reverses its effect.
type DeleteTransaction struct {
	ID     int64
	UserID int64

	// Set by a successful Perform.
	Deleted            *transaction.Transaction
	AffectedAccountIDs []int64
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	d.Deleted = nil

	stored, err := writer.Transactions.FindByIDForUpdate(ctx, d.ID, d.UserID)
	if err != nil {
		return ledgererr.Storage(err)
	}
	if stored == nil {
		return ledgererr.NotFound("transaction %d", d.ID)
	}
	if err := lockOwnedAccounts(ctx, writer.Accounts, d.UserID, stored.AccountID); err != nil {
		return err
	}

	deltas := balanceDeltas{}
	deltas.add(stored.AccountID, stored.OperationType.Effect(stored.Amount).Neg())
	if err := deltas.apply(ctx, writer.Accounts); err != nil {
		return err
	}

	if err := writer.Transactions.Delete(ctx, d.ID); err != nil {
		return ledgererr.Storage(err)
	}

	d.Deleted = stored
	d.AffectedAccountIDs = deltas.accountIDs()
	return nil
}
