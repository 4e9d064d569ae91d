package actions

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ledgererr.Invalid("amount %s must be greater than zero", amount)
	}
	return validateScale(amount)
}

func validateScale(amount decimal.Decimal) error {
	if !transaction.FitsScale(amount) {
		return ledgererr.Invalid("amount %s has more than %d decimal places", amount, transaction.AmountScale)
	}
	return nil
}

// lockOwnedAccounts locks the given accounts in ascending id order and checks
// each belongs to userID. Duplicates are locked once.
func lockOwnedAccounts(ctx context.Context, accounts account.IWriter, userID int64, ids ...int64) error {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		a, err := accounts.FindByIDForUpdate(ctx, id)
		if err != nil {
			return ledgererr.Storage(err)
		}
		if a == nil {
			return ledgererr.NotFound("account %d", id)
		}
		if a.UserID != userID {
			return ledgererr.Forbidden("account %d", id)
		}
	}
	return nil
}

func ownedCategory(ctx context.Context, categories *category.Memo, categoryID, userID int64) (*category.Category, error) {
	c, err := categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}
	if c == nil {
		return nil, ledgererr.NotFound("category %d", categoryID)
	}
	if c.UserID != userID {
		return nil, ledgererr.Forbidden("category %d", categoryID)
	}
	return c, nil
}

// balanceDeltas sums signed effects per account so every account is adjusted
// at most once per unit of work.
type balanceDeltas map[int64]decimal.Decimal

func (d balanceDeltas) add(accountID int64, effect decimal.Decimal) {
	d[accountID] = d[accountID].Add(effect)
}

// accountIDs lists every touched account in ascending order, including those
// whose effects cancelled out.
func (d balanceDeltas) accountIDs() []int64 {
	ids := make([]int64, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (d balanceDeltas) apply(ctx context.Context, accounts account.IWriter) error {
	for _, id := range d.accountIDs() {
		delta := d[id]
		if delta.IsZero() {
			continue
		}
		if err := accounts.AdjustBalance(ctx, id, delta); err != nil {
			return ledgererr.Storage(err)
		}
	}
	return nil
}
