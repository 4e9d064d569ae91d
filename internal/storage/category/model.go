package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/shopspring/decimal"
)

// OperationType decides the sign a category applies to transaction amounts.
type OperationType int16

const (
	OperationTypeIncome  OperationType = 1
	OperationTypeExpense OperationType = 2
)

var (
	signPositive = decimal.NewFromInt(1)
	signNegative = decimal.NewFromInt(-1)
)

// Sign returns +1 for income and -1 for expense.
func (t OperationType) Sign() decimal.Decimal {
	if t == OperationTypeExpense {
		return signNegative
	}
	return signPositive
}

// Effect is the signed change an amount filed under this type makes to a balance.
func (t OperationType) Effect(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(t.Sign())
}

func (t OperationType) Valid() bool {
	return t == OperationTypeIncome || t == OperationTypeExpense
}

func (t OperationType) String() string {
	switch t {
	case OperationTypeIncome:
		return "income"
	case OperationTypeExpense:
		return "expense"
	default:
		return fmt.Sprintf("OperationType(%d)", int16(t))
	}
}

// ParseOperationType accepts the names returned by String.
func ParseOperationType(s string) (OperationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return OperationTypeIncome, nil
	case "expense":
		return OperationTypeExpense, nil
	default:
		return 0, fmt.Errorf("unknown operation type %q", s)
	}
}

// Category represents a category record.
type Category struct {
	ID            int64         `db:"id"`
	UserID        int64         `db:"user_id"`
	Name          string        `db:"name"`
	OperationType OperationType `db:"operation_type"`
}

// Filter specifies filters for listing a user's categories.
type Filter struct {
	UserID        int64
	OperationType omit.Val[OperationType]
}

// IReader defines read access to the category catalog. Categories are managed
// outside the ledger, so there is no writer.
type IReader interface {
	// FindByID returns nil without error when the category does not exist.
	FindByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context, filter *Filter) ([]*Category, error)
}

// Memo caches category lookups for the lifetime of one unit of work.
type Memo struct {
	reader IReader
	seen   map[int64]*Category
}

func NewMemo(reader IReader) *Memo {
	return &Memo{reader: reader, seen: make(map[int64]*Category)}
}

func (m *Memo) FindByID(ctx context.Context, id int64) (*Category, error) {
	if c, ok := m.seen[id]; ok {
		return c, nil
	}
	c, err := m.reader.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.seen[id] = c
	return c, nil
}
