package account

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

var columns = []any{"id", "user_id", "name", "balance"}

var scanID scan.Mapper[int64] = scan.SingleColumnMapper[int64]

type Reader struct {
	exec bob.Executor
}

var _ IReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListByUser(ctx context.Context, userID int64) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	}
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Account]())
	if err != nil {
		return nil, err
	}

	result := make([]*Account, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*Account, error) {
	return r.find(ctx, id)
}

func (r *Reader) find(ctx context.Context, id int64, extra ...bob.Mod[*dialect.SelectQuery]) (*Account, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}, extra...)

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
