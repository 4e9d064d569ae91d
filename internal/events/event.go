package events

import (
	"context"
	"encoding/json"
	"time"
)

type Kind string

const (
	TransactionCreated Kind = "transaction.created"
	TransactionUpdated Kind = "transaction.updated"
	TransactionDeleted Kind = "transaction.deleted"
)

// LedgerEvent announces a committed change to a user's ledger. AccountIDs lists
// every account whose balance the change touched, in ascending order.
type LedgerEvent struct {
	Kind          Kind      `json:"kind"`
	TransactionID int64     `json:"transactionId"`
	UserID        int64     `json:"userId"`
	AccountIDs    []int64   `json:"accountIds"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewLedgerEvent(kind Kind, transactionID, userID int64, accountIDs ...int64) LedgerEvent {
	return LedgerEvent{
		Kind:          kind,
		TransactionID: transactionID,
		UserID:        userID,
		AccountIDs:    accountIDs,
		OccurredAt:    time.Now().UTC(),
	}
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Publisher delivers ledger events after the owning unit of work commits.
type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, LedgerEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
