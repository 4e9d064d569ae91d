package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/logging"
)

type DeleteTransactionInput struct {
	ID     int64 `path:"id" minimum:"1" doc:"Transaction id"`
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
}

type transactionDeleter interface {
	Delete(ctx context.Context, id, userID int64) error
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	LedgerService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{LedgerService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Description:   "Removes a transaction and reverses its effect on the account balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*struct{}, error) {
	logData := logging.GetLogData(ctx)
	logData.AddData("transactionID", input.ID)

	stopTimer := logData.AddTiming("deleteTransactionMs")
	err := h.LedgerService.Delete(ctx, input.ID, input.UserID)
	stopTimer()
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to delete transaction")
	}

	return nil, nil
}
