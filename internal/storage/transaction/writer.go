package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var scanID scan.Mapper[int64] = scan.SingleColumnMapper[int64]

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

// FindByIDForUpdate reads the transaction and locks its row until the unit of work ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id, userID int64) (*Transaction, error) {
	return w.find(ctx, id, userID, sm.ForUpdate("t"))
}

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (int64, error) {
	q := psql.Insert(
		im.Into("transactions", "user_id", "account_id", "category_id", "transaction_date", "amount", "note"),
		im.Values(psql.Arg(
			create.UserID,
			create.AccountID,
			create.CategoryID,
			DateOnly(create.Date).Format(time.DateOnly),
			create.Amount,
			nullIfEmpty(create.Note),
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scanID)
}

// Update overwrites date, amount, account, category and note.
func (w *Writer) Update(ctx context.Context, update *TransactionUpdate) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("account_id").ToArg(update.AccountID),
		um.SetCol("category_id").ToArg(update.CategoryID),
		um.SetCol("transaction_date").ToArg(DateOnly(update.Date).Format(time.DateOnly)),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("note").ToArg(nullIfEmpty(update.Note)),
		um.Where(psql.Quote("id").EQ(psql.Arg(update.ID))),
		um.Returning("id"),
	)
	ids, err := bob.All(ctx, w.tx, q, scanID)
	return expectOne("update", update.ID, ids, err)
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Returning("id"),
	)
	ids, err := bob.All(ctx, w.tx, q, scanID)
	return expectOne("delete", id, ids, err)
}

func expectOne(op string, id int64, ids []int64, err error) error {
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return fmt.Errorf("%s transaction %d: %d rows affected", op, id, len(ids))
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
