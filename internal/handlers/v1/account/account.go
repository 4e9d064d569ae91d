package account

import "github.com/carson-networks/budget-ledger/internal/service"

// Account is the API response model for an account.
type Account struct {
	ID      int64  `json:"id" doc:"Account id"`
	Name    string `json:"name" doc:"Account name"`
	Balance string `json:"balance" doc:"Decimal running balance"`
}

func accountFromService(a service.Account) Account {
	return Account{
		ID:      a.ID,
		Name:    a.Name,
		Balance: a.Balance.String(),
	}
}
