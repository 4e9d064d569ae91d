package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/params"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// UpdateTransactionBody carries the new values and what was posted before.
type UpdateTransactionBody struct {
	AccountID         int64  `json:"accountId" minimum:"1" doc:"New account id"`
	CategoryID        int64  `json:"categoryId" minimum:"1" doc:"New category id"`
	Date              string `json:"date" format:"date" doc:"New calendar date, YYYY-MM-DD"`
	Amount            string `json:"amount" minLength:"1" doc:"New positive decimal amount"`
	Note              string `json:"note,omitempty" maxLength:"500" doc:"New note"`
	PreviousAmount    string `json:"previousAmount" minLength:"1" doc:"Amount posted before this update"`
	PreviousAccountID int64  `json:"previousAccountId" minimum:"1" doc:"Account posted to before this update"`
}

type UpdateTransactionInput struct {
	ID     int64 `path:"id" minimum:"1" doc:"Transaction id"`
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
	Body   UpdateTransactionBody
}

type transactionUpdater interface {
	Update(ctx context.Context, tx service.Transaction, previousAmount decimal.Decimal, previousAccountID int64) error
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	LedgerService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{LedgerService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-transaction",
		Method:        http.MethodPut,
		Path:          "/v1/transaction/{id}",
		Summary:       "Update transaction",
		Description:   "Replaces a transaction, reversing the previous effect and applying the new one.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.Transaction, decimal.Decimal, error) {
	date, err := params.ParseDate("date", input.Body.Date)
	if err != nil {
		return service.Transaction{}, decimal.Decimal{}, err
	}
	amount, err := params.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return service.Transaction{}, decimal.Decimal{}, err
	}
	previousAmount, err := params.ParseAmount("previousAmount", input.Body.PreviousAmount)
	if err != nil {
		return service.Transaction{}, decimal.Decimal{}, err
	}

	return service.Transaction{
		ID:         input.ID,
		UserID:     input.UserID,
		AccountID:  input.Body.AccountID,
		CategoryID: input.Body.CategoryID,
		Date:       date,
		Amount:     amount,
		Note:       input.Body.Note,
	}, previousAmount, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*struct{}, error) {
	logData := logging.GetLogData(ctx)
	logData.AddData("transactionID", input.ID)

	tx, previousAmount, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("updateTransactionMs")
	err = h.LedgerService.Update(ctx, tx, previousAmount, input.Body.PreviousAccountID)
	stopTimer()
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to update transaction")
	}

	return nil, nil
}
