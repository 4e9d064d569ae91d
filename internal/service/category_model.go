package service

import (
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

// OperationType represents a category's operation type in the service layer.
type OperationType int16

const (
	OperationTypeIncome  OperationType = OperationType(category.OperationTypeIncome)
	OperationTypeExpense OperationType = OperationType(category.OperationTypeExpense)
)

func (t OperationType) String() string {
	return operationTypeToStorage(t).String()
}

// ParseOperationType accepts "income" or "expense".
func ParseOperationType(s string) (OperationType, error) {
	t, err := category.ParseOperationType(s)
	if err != nil {
		return 0, err
	}
	return operationTypeFromStorage(t), nil
}

// Category represents a category in the service layer.
type Category struct {
	ID            int64
	UserID        int64
	Name          string
	OperationType OperationType
}

func operationTypeToStorage(t OperationType) category.OperationType {
	return category.OperationType(t)
}

func operationTypeFromStorage(t category.OperationType) OperationType {
	return OperationType(t)
}
