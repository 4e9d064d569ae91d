package transaction

import (
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/params"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID            int64  `json:"id" doc:"Transaction id"`
	AccountID     int64  `json:"accountId" doc:"Account the transaction is posted to"`
	CategoryID    int64  `json:"categoryId" doc:"Category the transaction is filed under"`
	Date          string `json:"date" format:"date" doc:"Calendar date"`
	Amount        string `json:"amount" doc:"Positive decimal amount"`
	Note          string `json:"note,omitempty" doc:"Free text note"`
	OperationType string `json:"operationType" enum:"income,expense" doc:"Operation type of the category"`
}

// TransactionView is a transaction with its account and category names.
type TransactionView struct {
	ID            int64  `json:"id" doc:"Transaction id"`
	AccountID     int64  `json:"accountId" doc:"Account the transaction is posted to"`
	AccountName   string `json:"accountName" doc:"Account name"`
	CategoryID    int64  `json:"categoryId" doc:"Category the transaction is filed under"`
	CategoryName  string `json:"categoryName" doc:"Category name"`
	Date          string `json:"date" format:"date" doc:"Calendar date"`
	Amount        string `json:"amount" doc:"Positive decimal amount"`
	Note          string `json:"note,omitempty" doc:"Free text note"`
	OperationType string `json:"operationType" enum:"income,expense" doc:"Operation type of the category"`
}

func transactionFromService(tx *service.Transaction) Transaction {
	return Transaction{
		ID:            tx.ID,
		AccountID:     tx.AccountID,
		CategoryID:    tx.CategoryID,
		Date:          params.FormatDate(tx.Date),
		Amount:        tx.Amount.String(),
		Note:          tx.Note,
		OperationType: tx.OperationType.String(),
	}
}

func viewFromService(v service.TransactionView) TransactionView {
	return TransactionView{
		ID:            v.ID,
		AccountID:     v.AccountID,
		AccountName:   v.AccountName,
		CategoryID:    v.CategoryID,
		CategoryName:  v.CategoryName,
		Date:          params.FormatDate(v.Date),
		Amount:        v.Amount.String(),
		Note:          v.Note,
		OperationType: v.OperationType.String(),
	}
}
