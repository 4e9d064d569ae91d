package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-ledger/internal/handlers/v1/params"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/service"
)

type WeeklyInput struct {
	UserID int64  `header:"X-User-ID" required:"true" minimum:"1" doc:"Authenticated user id"`
	Start  string `query:"start" required:"true" format:"date" doc:"First day of week 1, YYYY-MM-DD"`
	End    string `query:"end" required:"true" format:"date" doc:"Last date included, YYYY-MM-DD"`
}

type weeklyReporter interface {
	ByWeek(ctx context.Context, userID int64, dates service.DateRange) ([]service.WeeklyTotal, error)
}

// WeeklyHandler handles GET /v1/report/weekly.
type WeeklyHandler struct {
	ReportService weeklyReporter
}

func NewWeeklyHandler(svc weeklyReporter) *WeeklyHandler {
	return &WeeklyHandler{ReportService: svc}
}

func (h *WeeklyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-weekly",
		Method:      http.MethodGet,
		Path:        "/v1/report/weekly",
		Summary:     "Weekly totals",
		Description: "Sums the user's transactions per 7-day week counted from start, and per operation type.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *WeeklyHandler) handle(ctx context.Context, input *WeeklyInput) (*ReportOutput, error) {
	logData := logging.GetLogData(ctx)

	start, err := params.ParseDate("start", input.Start)
	if err != nil {
		return nil, err
	}
	end, err := params.ParseDate("end", input.End)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("reportWeeklyMs")
	totals, err := h.ReportService.ByWeek(ctx, input.UserID, service.DateRange{Start: start, End: end})
	stopTimer()
	if err != nil {
		logData.AddData("error", err.Error())
		return nil, apierror.FromError(err, "failed to build weekly report")
	}

	resp := ReportResponseBody{Totals: make([]Total, len(totals))}
	for i, total := range totals {
		resp.Totals[i] = Total{
			Bucket:        total.Week,
			Amount:        total.Amount.String(),
			OperationType: total.OperationType.String(),
		}
	}
	return &ReportOutput{Body: resp}, nil
}
