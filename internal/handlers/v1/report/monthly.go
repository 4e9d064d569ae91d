package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type MonthlyInput struct {
	UserID int64 `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
	Year   int   `query:"year" required:"true" minimum:"1" maximum:"9999" doc:"Calendar year"`
}

type monthlyReporter interface {
	ByMonth(ctx context.Context, userID int64, year int) ([]service.MonthlyTotal, error)
}

// MonthlyHandler handles GET /v1/report/monthly.
type MonthlyHandler struct {
	ReportService monthlyReporter
}

func NewMonthlyHandler(svc monthlyReporter) *MonthlyHandler {
	return &MonthlyHandler{ReportService: svc}
}

func (h *MonthlyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-monthly",
		Method:      http.MethodGet,
		Path:        "/v1/report/monthly",
		Summary:     "Monthly totals",
		Description: "Sums the user's transactions in a year per calendar month and operation type.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *MonthlyHandler) handle(ctx context.Context, input *MonthlyInput) (*ReportOutput, error) {
	logData := logging.GetLogData(ctx)
	logData.AddData("year", input.Year)

	stopTimer := logData.AddTiming("reportMonthlyMs")
	totals, err := h.ReportService.ByMonth(ctx, input.UserID, input.Year)
	stopTimer()
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to build monthly report")
	}

	resp := ReportResponseBody{Totals: make([]Total, len(totals))}
	for i, total := range totals {
		resp.Totals[i] = Total{
			Bucket:        total.Month,
			Amount:        total.Amount.String(),
			OperationType: total.OperationType.String(),
		}
	}
	return &ReportOutput{Body: resp}, nil
}
