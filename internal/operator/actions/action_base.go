package actions

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

// IAction is one ledger mutation. Perform may run more than once when the
// operator retries, each time against a fresh writer, so it must only keep
// results from its last run.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
