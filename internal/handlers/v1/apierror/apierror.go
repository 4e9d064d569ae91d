// Package apierror turns ledger errors into HTTP problem responses.
package apierror

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
)

// FromError maps err's ledger kind to a status: not found 404, forbidden 403,
// invalid 400, anything else 500. msg is the client-facing summary.
func FromError(err error, msg string) error {
	switch {
	case errors.Is(err, ledgererr.ErrNotFound):
		return huma.Error404NotFound(msg, err)
	case errors.Is(err, ledgererr.ErrForbidden):
		return huma.Error403Forbidden(msg, err)
	case errors.Is(err, ledgererr.ErrInvalid):
		return huma.Error400BadRequest(msg, err)
	default:
		return huma.Error500InternalServerError(msg)
	}
}
