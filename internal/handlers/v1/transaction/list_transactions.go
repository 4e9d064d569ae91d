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

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Start     string `json:"start" format:"date" doc:"First date included, YYYY-MM-DD"`
	End       string `json:"end" format:"date" doc:"Last date included, YYYY-MM-DD"`
	AccountID int64  `json:"accountId,omitempty" minimum:"1" doc:"Only list this account's transactions"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
	Body   ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []TransactionView `json:"transactions" doc:"Transactions, newest first"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListByAccount(ctx context.Context, accountID, userID int64, dates service.DateRange) ([]service.TransactionView, error)
	ListByUser(ctx context.Context, userID int64, dates service.DateRange) ([]service.TransactionView, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	LedgerService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{LedgerService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Lists the user's transactions in an inclusive date range, optionally for one account.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseListTransactionsInput(input *ListTransactionsInput) (service.DateRange, error) {
	start, err := params.ParseDate("start", input.Body.Start)
	if err != nil {
		return service.DateRange{}, err
	}
	end, err := params.ParseDate("end", input.Body.End)
	if err != nil {
		return service.DateRange{}, err
	}
	return service.DateRange{Start: start, End: end}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	dates, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	var views []service.TransactionView
	if input.Body.AccountID > 0 {
		views, err = h.LedgerService.ListByAccount(ctx, input.Body.AccountID, input.UserID, dates)
	} else {
		views, err = h.LedgerService.ListByUser(ctx, input.UserID, dates)
	}
	stopTimer()
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to list transactions")
	}

	logData.AddData("transactionCount", len(views))

	resp := ListTransactionsResponseBody{
		Transactions: make([]TransactionView, len(views)),
	}
	for i, v := range views {
		resp.Transactions[i] = viewFromService(v)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
