package service

import (
	"context"

	"github.com/carson-networks/budget-ledger/internal/ledgererr"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

const (
	minReportYear = 1
	maxReportYear = 9999
)

// ReportService aggregates a user's transactions into monthly and weekly totals.
// Totals are magnitudes: expenses are not negated.
type ReportService struct {
	backend storage.Backend
}

func NewReportService(backend storage.Backend) *ReportService {
	return &ReportService{backend: backend}
}

// ByMonth returns one row per month and operation type that has transactions in year.
func (s *ReportService) ByMonth(ctx context.Context, userID int64, year int) ([]MonthlyTotal, error) {
	if year < minReportYear || year > maxReportYear {
		return nil, ledgererr.Invalid("year %d out of range", year)
	}

	rows, err := s.backend.Reader().Transactions.SumByMonth(ctx, userID, year)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}

	totals := make([]MonthlyTotal, len(rows))
	for i, row := range rows {
		totals[i] = MonthlyTotal{
			Month:         row.Month,
			Amount:        row.Amount,
			OperationType: operationTypeFromStorage(row.OperationType),
		}
	}
	return totals, nil
}

// ByWeek returns one row per week and operation type that has transactions in
// dates. Week 1 starts on dates.Start.
func (s *ReportService) ByWeek(ctx context.Context, userID int64, dates DateRange) ([]WeeklyTotal, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.backend.Reader().Transactions.SumByWeek(ctx, userID, dates.Start, dates.End)
	if err != nil {
		return nil, ledgererr.Storage(err)
	}

	totals := make([]WeeklyTotal, len(rows))
	for i, row := range rows {
		totals[i] = WeeklyTotal{
			Week:          row.Week,
			Amount:        row.Amount,
			OperationType: operationTypeFromStorage(row.OperationType),
		}
	}
	return totals, nil
}
