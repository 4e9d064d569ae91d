package category

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID            int64  `json:"id" doc:"Category id"`
	Name          string `json:"name" doc:"Category name"`
	OperationType string `json:"operationType" enum:"income,expense" doc:"Whether amounts filed here add to or subtract from balances"`
}

type ListCategoriesInput struct {
	UserID        int64  `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
	OperationType string `query:"operationType" enum:"income,expense" doc:"Only list categories of this operation type"`
}

type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"The user's categories ordered by name"`
}

type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

type categoryLister interface {
	ListCategories(ctx context.Context, userID int64, opType omit.Val[service.OperationType]) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func parseListCategoriesInput(input *ListCategoriesInput) (omit.Val[service.OperationType], error) {
	if input.OperationType == "" {
		return omit.Val[service.OperationType]{}, nil
	}
	opType, err := service.ParseOperationType(input.OperationType)
	if err != nil {
		return omit.Val[service.OperationType]{}, huma.Error400BadRequest("invalid operationType", err)
	}
	return omit.From(opType), nil
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	logData := logging.GetLogData(ctx)

	opType, err := parseListCategoriesInput(input)
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.ListCategories(ctx, input.UserID, opType)
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to list categories")
	}

	resp := ListCategoriesResponseBody{Categories: make([]Category, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = Category{
			ID:            c.ID,
			Name:          c.Name,
			OperationType: c.OperationType.String(),
		}
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
