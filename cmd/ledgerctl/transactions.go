package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carson-networks/budget-ledger/internal/service"
)

func newTransactionsCmd(v *viper.Viper, open opener) *cobra.Command {
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction listings",
	}

	var start, end string
	var accountID int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in a date range, newest first",
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

			var views []service.TransactionView
			if cmd.Flags().Changed("account") {
				views, err = svc.Ledger.ListByAccount(cmd.Context(), accountID, user, dates)
			} else {
				views, err = svc.Ledger.ListByUser(cmd.Context(), user, dates)
			}
			if err != nil {
				return err
			}
			if v.GetBool("raw") {
				return dump(cmd.OutOrStdout(), views)
			}
			return writeTransactions(cmd.OutOrStdout(), views)
		},
	}
	addRangeFlags(listCmd, &start, &end)
	listCmd.Flags().Int64Var(&accountID, "account", 0, "only list this account")

	transactionsCmd.AddCommand(listCmd)
	return transactionsCmd
}
