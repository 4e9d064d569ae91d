package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Account represents an account record.
type Account struct {
	ID      int64           `db:"id"`
	UserID  int64           `db:"user_id"`
	Name    string          `db:"name"`
	Balance decimal.Decimal `db:"balance"`
}

// IReader defines read access to accounts.
type IReader interface {
	// FindByID returns nil without error when the account does not exist.
	FindByID(ctx context.Context, id int64) (*Account, error)
	ListByUser(ctx context.Context, userID int64) ([]*Account, error)
}

// IWriter extends IReader with the operations available inside a unit of work.
// AdjustBalance is the only way the ledger changes a balance.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id int64) (*Account, error)
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error
}
