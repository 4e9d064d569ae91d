package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

type accountTable struct {
	state func() *state
}

var _ account.IWriter = (*accountTable)(nil)

func (t *accountTable) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := t.state().accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (t *accountTable) FindByIDForUpdate(ctx context.Context, id int64) (*account.Account, error) {
	return t.FindByID(ctx, id)
}

func (t *accountTable) ListByUser(ctx context.Context, userID int64) ([]*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := []*account.Account{}
	for _, a := range t.state().accounts {
		if a.UserID == userID {
			result = append(result, &a)
		}
	}
	slices.SortFunc(result, func(x, y *account.Account) int {
		return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.ID, y.ID))
	})
	return result, nil
}

func (t *accountTable) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := t.state()
	a, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("adjust balance: account %d not found", id)
	}
	a.Balance = a.Balance.Add(delta)
	s.accounts[id] = a
	return nil
}

type categoryTable struct {
	state func() *state
}

var _ category.IReader = (*categoryTable)(nil)

func (t *categoryTable) FindByID(ctx context.Context, id int64) (*category.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := t.state().categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *categoryTable) List(ctx context.Context, filter *category.Filter) ([]*category.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opType, byType := filter.OperationType.Get()
	result := []*category.Category{}
	for _, c := range t.state().categories {
		if c.UserID != filter.UserID || (byType && c.OperationType != opType) {
			continue
		}
		result = append(result, &c)
	}
	slices.SortFunc(result, func(x, y *category.Category) int {
		return cmp.Or(cmp.Compare(x.Name, y.Name), cmp.Compare(x.ID, y.ID))
	})
	return result, nil
}

type transactionTable struct {
	state func() *state
}

var _ transaction.IWriter = (*transactionTable)(nil)

// joined fills OperationType from the transaction's category, as the SQL join does.
func (s *state) joined(row transaction.Transaction) transaction.Transaction {
	row.OperationType = s.categories[row.CategoryID].OperationType
	return row
}

func (t *transactionTable) FindByID(ctx context.Context, id, userID int64) (*transaction.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := t.state()
	row, ok := s.transactions[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	row = s.joined(row)
	return &row, nil
}

func (t *transactionTable) FindByIDForUpdate(ctx context.Context, id, userID int64) (*transaction.Transaction, error) {
	return t.FindByID(ctx, id, userID)
}

func (t *transactionTable) List(ctx context.Context, filter *transaction.Filter) ([]*transaction.View, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := t.state()
	accountID, byAccount := filter.AccountID.Get()

	result := []*transaction.View{}
	for _, row := range s.transactions {
		if row.UserID != filter.UserID || (byAccount && row.AccountID != accountID) {
			continue
		}
		if !transaction.InRange(row.Date, filter.Start, filter.End) {
			continue
		}
		row = s.joined(row)
		result = append(result, &transaction.View{
			ID:            row.ID,
			UserID:        row.UserID,
			AccountID:     row.AccountID,
			CategoryID:    row.CategoryID,
			Date:          row.Date,
			Amount:        row.Amount,
			Note:          row.Note,
			OperationType: row.OperationType,
			CategoryName:  s.categories[row.CategoryID].Name,
			AccountName:   s.accounts[row.AccountID].Name,
		})
	}
	slices.SortFunc(result, func(x, y *transaction.View) int {
		return cmp.Or(y.Date.Compare(x.Date), cmp.Compare(x.ID, y.ID))
	})
	return result, nil
}

type bucketKey struct {
	bucket int
	opType category.OperationType
}

func (t *transactionTable) sum(userID int64, start, end time.Time, bucketOf func(time.Time) int) map[bucketKey]decimal.Decimal {
	s := t.state()
	totals := make(map[bucketKey]decimal.Decimal)
	for _, row := range s.transactions {
		if row.UserID != userID || !transaction.InRange(row.Date, start, end) {
			continue
		}
		key := bucketKey{bucket: bucketOf(row.Date), opType: s.joined(row).OperationType}
		totals[key] = totals[key].Add(row.Amount)
	}
	return totals
}

func sortedKeys(totals map[bucketKey]decimal.Decimal) []bucketKey {
	keys := make([]bucketKey, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(x, y bucketKey) int {
		return cmp.Or(cmp.Compare(x.bucket, y.bucket), cmp.Compare(x.opType, y.opType))
	})
	return keys
}

func (t *transactionTable) SumByMonth(ctx context.Context, userID int64, year int) ([]*transaction.MonthlyTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	first, last := transaction.YearBounds(year)
	totals := t.sum(userID, first, last, func(date time.Time) int { return int(date.Month()) })

	result := []*transaction.MonthlyTotal{}
	for _, key := range sortedKeys(totals) {
		result = append(result, &transaction.MonthlyTotal{Month: key.bucket, Amount: totals[key], OperationType: key.opType})
	}
	return result, nil
}

func (t *transactionTable) SumByWeek(ctx context.Context, userID int64, start, end time.Time) ([]*transaction.WeeklyTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	totals := t.sum(userID, start, end, func(date time.Time) int { return transaction.WeekIndex(start, date) })

	result := []*transaction.WeeklyTotal{}
	for _, key := range sortedKeys(totals) {
		result = append(result, &transaction.WeeklyTotal{Week: key.bucket, Amount: totals[key], OperationType: key.opType})
	}
	return result, nil
}

// checkRefs enforces the foreign keys and checks the schema declares.
func (s *state) checkRefs(accountID, categoryID int64, amount decimal.Decimal) error {
	if _, ok := s.accounts[accountID]; !ok {
		return fmt.Errorf("account %d does not exist", accountID)
	}
	if _, ok := s.categories[categoryID]; !ok {
		return fmt.Errorf("category %d does not exist", categoryID)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount %s must be positive", amount)
	}
	if !transaction.FitsScale(amount) {
		return fmt.Errorf("amount %s exceeds %d decimal places", amount, transaction.AmountScale)
	}
	return nil
}

func (t *transactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s := t.state()
	if err := s.checkRefs(create.AccountID, create.CategoryID, create.Amount); err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	s.lastTransactionID++
	s.transactions[s.lastTransactionID] = transaction.Transaction{
		ID:         s.lastTransactionID,
		UserID:     create.UserID,
		AccountID:  create.AccountID,
		CategoryID: create.CategoryID,
		Date:       transaction.DateOnly(create.Date),
		Amount:     create.Amount,
		Note:       create.Note,
	}
	return s.lastTransactionID, nil
}

func (t *transactionTable) Update(ctx context.Context, update *transaction.TransactionUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := t.state()
	row, ok := s.transactions[update.ID]
	if !ok {
		return fmt.Errorf("update transaction %d: not found", update.ID)
	}
	if err := s.checkRefs(update.AccountID, update.CategoryID, update.Amount); err != nil {
		return fmt.Errorf("update transaction %d: %w", update.ID, err)
	}
	row.AccountID = update.AccountID
	row.CategoryID = update.CategoryID
	row.Date = transaction.DateOnly(update.Date)
	row.Amount = update.Amount
	row.Note = update.Note
	s.transactions[update.ID] = row
	return nil
}

func (t *transactionTable) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := t.state()
	if _, ok := s.transactions[id]; !ok {
		return fmt.Errorf("delete transaction %d: not found", id)
	}
	delete(s.transactions, id)
	return nil
}
