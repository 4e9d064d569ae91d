package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/params"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID  int64  `json:"accountId" minimum:"1" doc:"Account id"`
	CategoryID int64  `json:"categoryId" minimum:"1" doc:"Category id"`
	Date       string `json:"date" format:"date" doc:"Calendar date, YYYY-MM-DD"`
	Amount     string `json:"amount" minLength:"1" doc:"Positive decimal amount"`
	Note       string `json:"note,omitempty" maxLength:"500" doc:"Optional note"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
	Body   CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID int64 `json:"id" doc:"Created transaction id"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	Create(ctx context.Context, tx service.Transaction) (int64, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	LedgerService transactionCreator
}

func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{LedgerService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Posts a transaction and applies its effect to the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.Transaction, error) {
	date, err := params.ParseDate("date", input.Body.Date)
	if err != nil {
		return service.Transaction{}, err
	}
	amount, err := params.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return service.Transaction{}, err
	}

	return service.Transaction{
		UserID:     input.UserID,
		AccountID:  input.Body.AccountID,
		CategoryID: input.Body.CategoryID,
		Date:       date,
		Amount:     amount,
		Note:       input.Body.Note,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	tx, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createTransactionMs")
	id, err := h.LedgerService.Create(ctx, tx)
	stopTimer()
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to create transaction")
	}

	logData.AddData("transactionID", id)
	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id},
	}, nil
}
