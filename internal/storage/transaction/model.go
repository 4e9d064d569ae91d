package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

// AmountScale is the number of fractional digits the amount and balance
// columns store.
const AmountScale = 2

// FitsScale reports whether amount is stored without rounding.
func FitsScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(AmountScale))
}

// Transaction represents a transaction record. OperationType is read from the
// category it is filed under.
type Transaction struct {
	ID            int64                  `db:"id"`
	UserID        int64                  `db:"user_id"`
	AccountID     int64                  `db:"account_id"`
	CategoryID    int64                  `db:"category_id"`
	Date          time.Time              `db:"transaction_date"`
	Amount        decimal.Decimal        `db:"amount"`
	Note          string                 `db:"note"`
	OperationType category.OperationType `db:"operation_type"`
}

// View is a transaction joined with the names shown next to it in listings.
type View struct {
	ID            int64                  `db:"id"`
	UserID        int64                  `db:"user_id"`
	AccountID     int64                  `db:"account_id"`
	CategoryID    int64                  `db:"category_id"`
	Date          time.Time              `db:"transaction_date"`
	Amount        decimal.Decimal        `db:"amount"`
	Note          string                 `db:"note"`
	OperationType category.OperationType `db:"operation_type"`
	CategoryName  string                 `db:"category_name"`
	AccountName   string                 `db:"account_name"`
}

// TransactionCreate is the input for inserting a transaction.
type TransactionCreate struct {
	UserID     int64
	AccountID  int64
	CategoryID int64
	Date       time.Time
	Amount     decimal.Decimal
	Note       string
}

// TransactionUpdate overwrites the mutable fields of an existing transaction.
type TransactionUpdate struct {
	ID         int64
	AccountID  int64
	CategoryID int64
	Date       time.Time
	Amount     decimal.Decimal
	Note       string
}

// Filter selects a user's transactions inside the inclusive date range
// [Start, End], optionally restricted to one account.
type Filter struct {
	UserID    int64
	AccountID omit.Val[int64]
	Start     time.Time
	End       time.Time
}

// MonthlyTotal is the summed amount of one operation type in one calendar month.
type MonthlyTotal struct {
	Month         int                    `db:"month"`
	Amount        decimal.Decimal        `db:"amount"`
	OperationType category.OperationType `db:"operation_type"`
}

// WeeklyTotal is the summed amount of one operation type in one relative week.
type WeeklyTotal struct {
	Week          int                    `db:"week"`
	Amount        decimal.Decimal        `db:"amount"`
	OperationType category.OperationType `db:"operation_type"`
}

// IReader defines read access to transactions and their aggregates.
// Listings are ordered by date descending, then id ascending. Aggregates are
// sparse and ordered by bucket, then operation type.
type IReader interface {
	// FindByID returns nil without error when no transaction with id belongs to userID.
	FindByID(ctx context.Context, id, userID int64) (*Transaction, error)
	List(ctx context.Context, filter *Filter) ([]*View, error)
	SumByMonth(ctx context.Context, userID int64, year int) ([]*MonthlyTotal, error)
	SumByWeek(ctx context.Context, userID int64, start, end time.Time) ([]*WeeklyTotal, error)
}

// IWriter extends IReader with the operations available inside a unit of work.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id, userID int64) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (int64, error)
	Update(ctx context.Context, update *TransactionUpdate) error
	Delete(ctx context.Context, id int64) error
}
