package service

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// AccountService exposes a user's accounts. Accounts are managed elsewhere;
// the ledger only reads them and moves their balances.
type AccountService struct {
	backend storage.Backend
}

func NewAccountService(backend storage.Backend) *AccountService {
	return &AccountService{backend: backend}
}

// ListAccounts returns userID's accounts ordered by name.
func (s *AccountService) ListAccounts(ctx context.Context, userID int64) ([]Account, error) {
	rows, err := s.backend.Reader().Accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromStorage(row)
	}
	return accounts, nil
}

// GetAccount returns the account with id, which must belong to userID.
func (s *AccountService) GetAccount(ctx context.Context, id, userID int64) (*Account, error) {
	row, err := s.backend.Reader().Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}
	if row == nil {
		return nil, ledgererr.NotFound("account %d", id)
	}
	if row.UserID != userID {
		return nil, ledgererr.Forbidden("account %d", id)
	}

	account := accountFromStorage(row)
	return &account, nil
}
