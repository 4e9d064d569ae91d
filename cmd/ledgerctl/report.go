package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carson-networks/budget-ledger/internal/service"
)

func newReportCmd(v *viper.Viper, open opener) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Summed totals per period and operation type",
	}

	var year int
	monthlyCmd := &cobra.Command{
		Use:   "monthly",
		Short: "Totals per calendar month of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userID(v)
			if err != nil {
				return err
			}
			svc, release, err := open(v)
			if err != nil {
				return err
			}
			defer release()

			totals, err := svc.Reports.ByMonth(cmd.Context(), user, year)
			if err != nil {
				return err
			}
			if v.GetBool("raw") {
				return dump(cmd.OutOrStdout(), totals)
			}
			return writeMonthly(cmd.OutOrStdout(), totals)
		},
	}
	monthlyCmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")

	var start, end string
	weeklyCmd := &cobra.Command{
		Use:   "weekly",
		Short: "Totals per 7-day week counted from --start",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := userID(v)
			if err != nil {
				return err
			}
			dates, err := parseRange(start, end)
			if err != nil {
				return err
			}
			svc, release, err := open(v)
			if err != nil {
				return err
			}
			defer release()

			totals, err := svc.Reports.ByWeek(cmd.Context(), user, dates)
			if err != nil {
				return err
			}
			if v.GetBool("raw") {
				return dump(cmd.OutOrStdout(), totals)
			}
			return writeWeekly(cmd.OutOrStdout(), totals)
		},
	}
	addRangeFlags(weeklyCmd, &start, &end)

	reportCmd.AddCommand(monthlyCmd, weeklyCmd)
	return reportCmd
}

func addRangeFlags(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(end, "end", "", "last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func parseRange(start, end string) (service.DateRange, error) {
	from, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return service.DateRange{}, err
	}
	to, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return service.DateRange{}, err
	}
	return service.DateRange{Start: from, End: to}, nil
}
