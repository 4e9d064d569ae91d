package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
)

type Writer struct {
	tx bob.Executor
	Reader
}

var _ IWriter = (*Writer)(nil)

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate reads the account and holds its row lock until the unit of work ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id int64) (*Account, error) {
	return w.find(ctx, id, sm.ForUpdate())
}

// AdjustBalance adds delta to the stored balance in a single statement, so
// concurrent writers serialize on the row lock instead of overwriting each other.
func (w *Writer) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").To(psql.Raw("balance + ?", delta)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning("id"),
	)
	ids, err := bob.All(ctx, w.tx, q, scanID)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return fmt.Errorf("adjust balance: account %d not updated", id)
	}
	return nil
}
