package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID      int64
	UserID  int64
	Name    string
	Balance decimal.Decimal
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:      row.ID,
		UserID:  row.UserID,
		Name:    row.Name,
		Balance: row.Balance,
	}
}
