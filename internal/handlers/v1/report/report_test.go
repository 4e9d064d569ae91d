package report

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-ledger/internal/handlers/v1/params"
	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/service"
)

const userHeader = params.UserHeader + ": 7"

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) ByMonth(ctx context.Context, userID int64, year int) ([]service.MonthlyTotal, error) {
	args := m.Called(ctx, userID, year)
	totals, _ := args.Get(0).([]service.MonthlyTotal)
	return totals, args.Error(1)
}

func (m *mockReportService) ByWeek(ctx context.Context, userID int64, dates service.DateRange) ([]service.WeeklyTotal, error) {
	args := m.Called(ctx, userID, dates)
	totals, _ := args.Get(0).([]service.WeeklyTotal)
	return totals, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockReportService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewMonthlyHandler(svc).Register(api)
	NewWeeklyHandler(svc).Register(api)
	return api
}

func decodeTotals(t *testing.T, resp interface{ Bytes() []byte }) []Total {
	t.Helper()
	var body ReportResponseBody
	require.NoError(t, json.Unmarshal(resp.Bytes(), &body))
	return body.Totals
}

func TestHTTP_Monthly(t *testing.T) {
	svc := new(mockReportService)
	svc.On("ByMonth", mock.Anything, int64(7), 2024).Return([]service.MonthlyTotal{
		{Month: 1, Amount: decimal.NewFromInt(150), OperationType: service.OperationTypeExpense},
		{Month: 2, Amount: decimal.NewFromInt(200), OperationType: service.OperationTypeIncome},
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/report/monthly?year=2024", userHeader)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []Total{
		{Bucket: 1, Amount: "150", OperationType: "expense"},
		{Bucket: 2, Amount: "200", OperationType: "income"},
	}, decodeTotals(t, resp.Body))
}

func TestHTTP_Monthly_MissingYear(t *testing.T) {
	svc := new(mockReportService)

	resp := newTestAPI(t, svc).Get("/v1/report/monthly", userHeader)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "ByMonth", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_Weekly(t *testing.T) {
	svc := new(mockReportService)
	svc.On("ByWeek", mock.Anything, int64(7), mock.MatchedBy(func(dates service.DateRange) bool {
		return dates.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			dates.End.Equal(time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC))
	})).Return([]service.WeeklyTotal{
		{Week: 1, Amount: decimal.NewFromInt(10), OperationType: service.OperationTypeExpense},
		{Week: 3, Amount: decimal.RequireFromString("7.5"), OperationType: service.OperationTypeExpense},
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/report/weekly?start=2024-01-01&end=2024-01-21", userHeader)

	require.Equal(t, http.StatusOK, resp.Code)
	totals := decodeTotals(t, resp.Body)
	require.Len(t, totals, 2)
	assert.Equal(t, 3, totals[1].Bucket)
	assert.Equal(t, "7.5", totals[1].Amount)
	svc.AssertExpectations(t)
}

func TestHTTP_Weekly_InvertedRange(t *testing.T) {
	svc := new(mockReportService)
	svc.On("ByWeek", mock.Anything, int64(7), mock.Anything).Return(nil, ledgererr.Invalid("date range ends before it starts"))

	resp := newTestAPI(t, svc).Get("/v1/report/weekly?start=2024-02-01&end=2024-01-01", userHeader)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
