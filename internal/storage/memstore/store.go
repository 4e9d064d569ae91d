// Package memstore is an in-process storage backend. Units of work run one at
// a time against a private copy of the committed state; Commit publishes the
// copy and Rollback drops it.
package memstore

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/storage"
	"github.com/carson-networks/budget-ledger/internal/storage/account"
	"github.com/carson-networks/budget-ledger/internal/storage/category"
	"github.com/carson-networks/budget-ledger/internal/storage/transaction"
)

var ErrFinished = errors.New("memstore: unit of work already finished")

type state struct {
	accounts     map[int64]account.Account
	categories   map[int64]category.Category
	transactions map[int64]transaction.Transaction

	lastAccountID     int64
	lastCategoryID    int64
	lastTransactionID int64
}

func newState() *state {
	return &state{
		accounts:     make(map[int64]account.Account),
		categories:   make(map[int64]category.Category),
		transactions: make(map[int64]transaction.Transaction),
	}
}

func (s *state) clone() *state {
	return &state{
		accounts:          maps.Clone(s.accounts),
		categories:        maps.Clone(s.categories),
		transactions:      maps.Clone(s.transactions),
		lastAccountID:     s.lastAccountID,
		lastCategoryID:    s.lastCategoryID,
		lastTransactionID: s.lastTransactionID,
	}
}

type Store struct {
	mu        sync.RWMutex
	committed *state

	// writeSlot holds a token while a unit of work is open.
	writeSlot chan struct{}
}

var _ storage.Backend = (*Store)(nil)

func New() *Store {
	return &Store{
		committed: newState(),
		writeSlot: make(chan struct{}, 1),
	}
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

// Reader reads committed state. Committed states are never mutated in place,
// so each call sees a consistent snapshot.
func (s *Store) Reader() *storage.Reader {
	return &storage.Reader{
		Accounts:     &accountTable{state: s.snapshot},
		Categories:   &categoryTable{state: s.snapshot},
		Transactions: &transactionTable{state: s.snapshot},
	}
}

// Write waits for the previous unit of work to finish, then opens a new one.
func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.writeSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	u := &unit{store: s, working: s.snapshot().clone()}
	current := func() *state { return u.working }
	return storage.NewWriterFrom(
		u,
		&accountTable{state: current},
		&categoryTable{state: current},
		&transactionTable{state: current},
	), nil
}

// seed applies change as its own unit of work, after any open unit finishes.
func (s *Store) seed(change func(next *state)) {
	s.writeSlot <- struct{}{}
	defer func() { <-s.writeSlot }()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.committed.clone()
	change(next)
	s.committed = next
}

// AddAccount seeds an account and returns its id. It waits for an open unit
// of work to finish.
func (s *Store) AddAccount(userID int64, name string, balance decimal.Decimal) int64 {
	var id int64
	s.seed(func(next *state) {
		next.lastAccountID++
		id = next.lastAccountID
		next.accounts[id] = account.Account{
			ID:      id,
			UserID:  userID,
			Name:    name,
			Balance: balance,
		}
	})
	return id
}

// AddCategory seeds a category and returns its id. It waits for an open unit
// of work to finish.
func (s *Store) AddCategory(userID int64, name string, opType category.OperationType) int64 {
	var id int64
	s.seed(func(next *state) {
		next.lastCategoryID++
		id = next.lastCategoryID
		next.categories[id] = category.Category{
			ID:            id,
			UserID:        userID,
			Name:          name,
			OperationType: opType,
		}
	})
	return id
}

type unit struct {
	store   *Store
	working *state
	done    bool
}

func (u *unit) Commit(ctx context.Context) error {
	if u.done {
		return ErrFinished
	}
	u.done = true

	u.store.mu.Lock()
	u.store.committed = u.working
	u.store.mu.Unlock()

	<-u.store.writeSlot
	return nil
}

func (u *unit) Rollback(ctx context.Context) error {
	if u.done {
		return ErrFinished
	}
	u.done = true
	u.working = nil
	<-u.store.writeSlot
	return nil
}
