package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "user_id", "name", "operation_type"}

type Reader struct {
	exec bob.Executor
}

var _ IReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Category, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Reader) List(ctx context.Context, filter *Filter) ([]*Category, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
	}
	if opType, ok := filter.OperationType.Get(); ok {
		queryMods = append(queryMods, sm.Where(psql.Quote("operation_type").EQ(psql.Arg(int16(opType)))))
	}
	queryMods = append(queryMods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Category]())
	if err != nil {
		return nil, err
	}
	result := make([]*Category, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
