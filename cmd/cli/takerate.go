package main

import (
	"revenue-model/internal/analysis"
	"revenue-model/internal/report"

	"github.com/spf13/cobra"
)

var (
	trInput analysis.AssetInput
	trSplit = analysis.DefaultFeeSplit()
)

var takeRateCmd = &cobra.Command{
	Use:     "takerate",
	Short:   "Annual revenue and take rate for one asset",
	Example: `  revenue takerate --name stETH --balance 100000 --price 3000 --apr 0.04 --mgmt 0.01 --perf 0.1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := analysis.ComputeTakeRate(trInput, trSplit)
		if err != nil {
			return err
		}
		report.WriteTakeRate(cmd.OutOrStdout(), tr)
		return nil
	},
}

func init() {
	f := takeRateCmd.Flags()
	f.StringVar(&trInput.Name, "name", "asset", "asset name")
	f.Float64Var(&trInput.Balance, "balance", 0, "balance in asset units")
	f.Float64Var(&trInput.Price, "price", 1, "USD price per asset unit")
	f.Float64Var(&trInput.GrowthAPR, "apr", 0, "gross yield as a fraction")
	f.Float64Var(&trInput.ManagementFee, "mgmt", 0, "annual management fee on TVL")
	f.Float64Var(&trInput.PerformanceFee, "perf", 0, "performance fee as a fraction of yield")
	f.Float64Var(&trSplit.ManagementDAO, "mgmt-dao", trSplit.ManagementDAO, "DAO share of management fees")
	f.Float64Var(&trSplit.PerformanceDAO, "perf-dao", trSplit.PerformanceDAO, "DAO share of performance fees")
	f.Float64Var(&trSplit.ManagementOperator, "mgmt-operator", trSplit.ManagementOperator, "operator share of management fees")
	f.Float64Var(&trSplit.PerformanceOperator, "perf-operator", trSplit.PerformanceOperator, "operator share of performance fees")

	rootCmd.AddCommand(takeRateCmd)
}
