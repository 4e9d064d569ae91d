package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carson-networks/budget-ledger/internal/config"
	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/logging"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/service"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

func main() {
	if err := newRootCmd(openPostgres).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// opener connects ledgerctl to a ledger. The returned func releases it.
type opener func(v *viper.Viper) (*service.Service, func(), error)

func newRootCmd(open opener) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LEDGERCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect budget ledger reports and transactions",
		Long: `ledgerctl reads a budget ledger database and prints reports and
transaction listings for one user.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.Int64("user", 0, "id of the user whose ledger is read")
	flags.String("dsn", "", "PostgreSQL connection string; defaults to the POSTGRES_* environment")
	flags.Bool("raw", false, "dump the service values instead of a table")
	for _, name := range []string{"user", "dsn", "raw"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newReportCmd(v, open), newTransactionsCmd(v, open))
	return rootCmd
}

func userID(v *viper.Viper) (int64, error) {
	id := v.GetInt64("user")
	if id < 1 {
		return 0, fmt.Errorf("--user must be a positive user id")
	}
	return id, nil
}

func openPostgres(v *viper.Viper) (*service.Service, func(), error) {
	dsn := v.GetString("dsn")
	if dsn == "" {
		env, err := config.ProcessEnvironmentVariables()
		if err != nil {
			return nil, nil, err
		}
		dsn = env.PostgresDSN()
	}

	db, err := storage.Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	svc := newReadOnlyService(db, logging.SetupLogging(logrus.WarnLevel))
	return svc, func() { _ = db.Close() }, nil
}

var errReadOnly = errors.New("ledgerctl is read-only")

// readOnlyProcessor refuses every ledger mutation.
type readOnlyProcessor struct{}

func (readOnlyProcessor) Process(context.Context, actions.IAction) error {
	return errReadOnly
}

func newReadOnlyService(backend storage.Backend, logger *logrus.Logger) *service.Service {
	return service.NewService(backend, readOnlyProcessor{}, events.NoopPublisher{}, logger)
}
