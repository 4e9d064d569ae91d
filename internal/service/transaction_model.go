package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer. OperationType is
// filled on reads and ignored on writes, where the category decides it.
type Transaction struct {
	ID            int64
	UserID        int64
	AccountID     int64
	CategoryID    int64
	Date          time.Time
	Amount        decimal.Decimal
	Note          string
	OperationType OperationType
}

// TransactionView is a transaction with the names shown next to it in listings.
type TransactionView struct {
	Transaction
	AccountName  string
	CategoryName string
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ledgererr.Invalid("date range needs both a start and an end")
	}
	if transaction.DateOnly(r.End).Before(transaction.DateOnly(r.Start)) {
		return ledgererr.Invalid("date range ends (%s) before it starts (%s)",
			r.End.Format(time.DateOnly), r.Start.Format(time.DateOnly))
	}
	return nil
}

// MonthlyTotal is the summed amount of one operation type in one calendar month.
type MonthlyTotal struct {
	Month         int
	Amount        decimal.Decimal
	OperationType OperationType
}

// WeeklyTotal is the summed amount of one operation type in one week counted
// from the start of the requested range.
type WeeklyTotal struct {
	Week          int
	Amount        decimal.Decimal
	OperationType OperationType
}

func transactionFromStorage(row *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:            row.ID,
		UserID:        row.UserID,
		AccountID:     row.AccountID,
		CategoryID:    row.CategoryID,
		Date:          row.Date,
		Amount:        row.Amount,
		Note:          row.Note,
		OperationType: operationTypeFromStorage(row.OperationType),
	}
}

func viewsFromStorage(rows []*transaction.View) []TransactionView {
	views := make([]TransactionView, len(rows))
	for i, row := range rows {
		views[i] = TransactionView{
			Transaction: Transaction{
				ID:            row.ID,
				UserID:        row.UserID,
				AccountID:     row.AccountID,
				CategoryID:    row.CategoryID,
				Date:          row.Date,
				Amount:        row.Amount,
				Note:          row.Note,
				OperationType: operationTypeFromStorage(row.OperationType),
			},
			AccountName:  row.AccountName,
			CategoryName: row.CategoryName,
		}
	}
	return views
}
