package storage

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes for failures that succeed when the whole unit of work is retried.
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

// IsRetryable reports whether err is a transient conflict between concurrent
// units of work. Such units were rolled back by the database and can be rerun.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
