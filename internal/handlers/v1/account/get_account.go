package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type GetAccountInput struct {
	ID     int64 `path:"id" minimum:"1" doc:"Account id"`
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
}

type GetAccountOutput struct {
	Body Account
}

type accountGetter interface {
	GetAccount(ctx context.Context, id, userID int64) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/accounts/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/accounts/{id}",
		Summary:     "Get account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	acc, err := h.AccountService.GetAccount(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, apierror.FromError(err, "failed to get account")
	}
	return &GetAccountOutput{Body: accountFromService(*acc)}, nil
}
