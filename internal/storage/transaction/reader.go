package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var transactionColumns = []any{
	"t.id", "t.user_id", "t.account_id", "t.category_id", "t.transaction_date", "t.amount",
	"COALESCE(t.note, '') AS note",
	"c.operation_type",
}

var viewColumns = append(append([]any{}, transactionColumns...),
	"c.name AS category_name",
	"a.name AS account_name",
)

type Reader struct {
	exec bob.Executor
}

var _ IReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// dateArg binds a calendar date without the time zone conversions timestamps get.
func dateArg(t time.Time) bob.Expression {
	return psql.Raw("CAST(? AS date)", DateOnly(t).Format(time.DateOnly))
}

func joinCategory() bob.Mod[*dialect.SelectQuery] {
	return sm.InnerJoin("categories AS c").On(psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")))
}

func (r *Reader) FindByID(ctx context.Context, id, userID int64) (*Transaction, error) {
	return r.find(ctx, id, userID)
}

func (r *Reader) find(ctx context.Context, id, userID int64, extra ...bob.Mod[*dialect.SelectQuery]) (*Transaction, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From("transactions AS t"),
		joinCategory(),
		sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
	}, extra...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.Date = DateOnly(row.Date)
	return &row, nil
}

// List returns the transactions matching filter, newest first.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]*View, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(viewColumns...),
		sm.From("transactions AS t"),
		joinCategory(),
		sm.InnerJoin("accounts AS a").On(psql.Quote("a", "id").EQ(psql.Quote("t", "account_id"))),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(filter.UserID))),
		sm.Where(psql.Quote("t", "transaction_date").GTE(dateArg(filter.Start))),
		sm.Where(psql.Quote("t", "transaction_date").LTE(dateArg(filter.End))),
	}
	if accountID, ok := filter.AccountID.Get(); ok {
		queryMods = append(queryMods, sm.Where(psql.Quote("t", "account_id").EQ(psql.Arg(accountID))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("t", "transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[View]())
	if err != nil {
		return nil, err
	}
	result := make([]*View, len(rows))
	for i := range rows {
		rows[i].Date = DateOnly(rows[i].Date)
		result[i] = &rows[i]
	}
	return result, nil
}

// SumByMonth totals a user's transactions in year per calendar month and operation type.
func (r *Reader) SumByMonth(ctx context.Context, userID int64, year int) ([]*MonthlyTotal, error) {
	first, last := YearBounds(year)
	q := psql.Select(
		sm.Columns(
			"CAST(EXTRACT(MONTH FROM t.transaction_date) AS integer) AS month",
			"SUM(t.amount) AS amount",
			"c.operation_type",
		),
		sm.From("transactions AS t"),
		joinCategory(),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("t", "transaction_date").GTE(dateArg(first))),
		sm.Where(psql.Quote("t", "transaction_date").LTE(dateArg(last))),
		sm.GroupBy("month"),
		sm.GroupBy(psql.Quote("c", "operation_type")),
		sm.OrderBy("month").Asc(),
		sm.OrderBy(psql.Quote("c", "operation_type")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[MonthlyTotal]())
	if err != nil {
		return nil, err
	}
	result := make([]*MonthlyTotal, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// SumByWeek totals a user's transactions in [start, end] per relative week
// (see WeekIndex) and operation type.
func (r *Reader) SumByWeek(ctx context.Context, userID int64, start, end time.Time) ([]*WeeklyTotal, error) {
	q := psql.Select(
		sm.Columns(
			psql.Raw("(t.transaction_date - CAST(? AS date)) / 7 + 1 AS week", DateOnly(start).Format(time.DateOnly)),
			"SUM(t.amount) AS amount",
			"c.operation_type",
		),
		sm.From("transactions AS t"),
		joinCategory(),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("t", "transaction_date").GTE(dateArg(start))),
		sm.Where(psql.Quote("t", "transaction_date").LTE(dateArg(end))),
		sm.GroupBy("week"),
		sm.GroupBy(psql.Quote("c", "operation_type")),
		sm.OrderBy("week").Asc(),
		sm.OrderBy(psql.Quote("c", "operation_type")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[WeeklyTotal]())
	if err != nil {
		return nil, err
	}
	result := make([]*WeeklyTotal, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
