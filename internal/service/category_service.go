package service

import (
	"context"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
)

type CategoryService struct {
	backend storage.Backend
}

func NewCategoryService(backend storage.Backend) *CategoryService {
	return &CategoryService{backend: backend}
}

// ListCategories returns userID's categories ordered by name, optionally only
// those of one operation type.
func (s *CategoryService) ListCategories(ctx context.Context, userID int64, opType omit.Val[OperationType]) ([]Category, error) {
	filter := &category.Filter{UserID: userID}
	if t, ok := opType.Get(); ok {
		filter.OperationType = omit.From(operationTypeToStorage(t))
	}

	rows, err := s.backend.Reader().Categories.List(ctx, filter)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = Category{
			ID:            row.ID,
			UserID:        row.UserID,
			Name:          row.Name,
			OperationType: operationTypeFromStorage(row.OperationType),
		}
	}
	return categories, nil
}
