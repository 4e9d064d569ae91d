package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/carson-networks/budget-ledger/internal/service"
)

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

func dump(w io.Writer, value any) error {
	dumper.Fdump(w, value)
	return nil
}

func writeMonthly(w io.Writer, totals []service.MonthlyTotal) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tTYPE\tAMOUNT")
	for _, total := range totals {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", time.Month(total.Month), total.OperationType, total.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func writeWeekly(w io.Writer, totals []service.WeeklyTotal) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tTYPE\tAMOUNT")
	for _, total := range totals {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", total.Week, total.OperationType, total.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func writeTransactions(w io.Writer, views []service.TransactionView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tACCOUNT\tCATEGORY\tTYPE\tAMOUNT\tNOTE")
	for _, view := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			view.ID, view.Date.Format(time.DateOnly), view.AccountName, view.CategoryName,
			view.OperationType, view.Amount.StringFixed(2), view.Note)
	}
	return tw.Flush()
}
