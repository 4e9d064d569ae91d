package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Committer ends a unit of work.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the tables of one unit of work. Everything done through a
// Writer becomes visible on Commit or is discarded on Rollback.
type Writer struct {
	tx           Committer
	Accounts     account.IWriter
	Categories   category.IReader
	Transactions transaction.IWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           bobTx{tx: tx},
		Accounts:     account.NewWriter(tx),
		Categories:   category.NewReader(tx),
		Transactions: transaction.NewWriter(tx),
	}
}

// NewWriterFrom assembles a Writer for backends other than PostgreSQL.
func NewWriterFrom(tx Committer, accounts account.IWriter, categories category.IReader, transactions transaction.IWriter) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Categories:   categories,
		Transactions: transactions,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}

type bobTx struct {
	tx bob.Tx
}

func (b bobTx) Commit(ctx context.Context) error {
	return b.tx.Commit(ctx)
}

func (b bobTx) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}
