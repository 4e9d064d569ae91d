package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type GetTransactionInput struct {
	ID     int64 `path:"id" minimum:"1" doc:"Transaction id"`
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
}

type GetTransactionOutput struct {
	Body Transaction
}

type transactionGetter interface {
	GetByID(ctx context.Context, id, userID int64) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	LedgerService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{LedgerService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	logData.AddData("transactionID", input.ID)

	tx, err := h.LedgerService.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to get transaction")
	}
	if tx == nil {
		return nil, huma.Error404NotFound("transaction not found")
	}

	return &GetTransactionOutput{Body: transactionFromService(tx)}, nil
}
