package main

import (
	"os"

	"revenue-model/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logLevel string
	log      = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Project recurring fee revenue for a portfolio of units",
	Long: `revenue projects month-by-month balances and fee income for units
priced in USD, ETH or BTC, and rolls them up by currency, year and unit.

Plans are YAML files; without --plan the built-in Base Case is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel, true)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func main() {
	_ = godotenv.Load()
	err := rootCmd.Execute()
	_ = logging.Sync(log)
	if err != nil {
		os.Exit(1)
	}
}
