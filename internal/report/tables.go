package report

import (
	"fmt"
	"io"

	"revenue-model/internal/aggregate"
	"revenue-model/internal/analysis"
	"revenue-model/internal/model"
)

func WriteYears(w io.Writer, years []aggregate.YearRow) {
	fmt.Fprintf(w, "%-6s %14s %14s %14s %14s %10s\n", "year", "end balance", "mgmt fees", "perf fees", "total fees", "avg fee %")
	for _, y := range years {
		fmt.Fprintf(w, "%-6d %14s %14s %14s %14s %10s\n",
			y.Year,
			USD(y.EndOfYearBalanceUSD),
			USD(y.ManagementFeesUSD),
			USD(y.PerformanceFeesUSD),
			USD(y.TotalFeesUSD),
			Percent(y.AvgFeePct),
		)
	}
}

func WriteSummary(w io.Writer, s aggregate.Summary) {
	fmt.Fprintf(w, "periods:          %d\n", s.Periods)
	fmt.Fprintf(w, "final balance:    %s\n", USD(s.BalanceUSD))
	fmt.Fprintf(w, "final month fees: %s\n", USD(s.MonthlyFeeUSD))
	fmt.Fprintf(w, "annualized fees:  %s\n", USD(s.AnnualFeeUSD))
	fmt.Fprintf(w, "avg fee %%:        %s\n", Percent(s.AvgFeePct))
	fmt.Fprintf(w, "cumulative fees:  %s\n", USD(s.CumulativeFeesUSD))
}

func WriteUnits(w io.Writer, units []model.Unit) {
	fmt.Fprintf(w, "%-28s %-4s %-8s %12s %8s %8s %8s %8s\n", "id", "cur", "launch", "balance", "growth", "mgmt", "perf", "yield")
	for _, u := range units {
		launch := "-"
		if m, ok := u.LaunchMonth(); ok {
			launch = model.FormatMonth(m)
		}
		fmt.Fprintf(w, "%-28s %-4s %-8s %12.2f %8s %8s %8s %8s  %s\n",
			u.ID, u.Currency, launch, u.InitialBalance,
			Rate(u.MonthlyGrowthRate), Rate(u.ManagementFeeRate()), Rate(u.PerformanceFeeRate()), Rate(u.YieldAPR),
			u.Name,
		)
	}
}

func WriteComparison(w io.Writer, results []analysis.ComparisonResult) {
	fmt.Fprintf(w, "%-20s %14s %14s %14s %10s\n", "variation", "final balance", "annual fees", "total fees", "avg fee %")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%-20s error: %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%-20s %14s %14s %14s %10s\n",
			r.Name,
			USD(r.Summary.BalanceUSD),
			USD(r.Summary.AnnualFeeUSD),
			USD(r.Summary.CumulativeFeesUSD),
			Percent(r.Summary.AvgFeePct),
		)
	}
}

func WriteSweep(w io.Writer, param analysis.Parameter, points []analysis.SweepPoint) {
	fmt.Fprintf(w, "%-22s %14s %14s %14s %10s\n", param, "total fees", "final balance", "annual fees", "avg fee %")
	for _, p := range points {
		fmt.Fprintf(w, "%-22g %14s %14s %14s %10s\n",
			p.Value,
			USD(p.TotalFeesUSD),
			USD(p.FinalBalanceUSD),
			USD(p.FinalAnnualFeeUSD),
			Percent(p.AvgFeePct),
		)
	}
}

func WriteRanking(w io.Writer, ranks []analysis.UnitRanking) {
	fmt.Fprintf(w, "%-4s %-20s %-4s %14s %14s %8s\n", "rank", "unit", "cur", "total fees", "final balance", "share")
	for i, r := range ranks {
		fmt.Fprintf(w, "%-4d %-20s %-4s %14s %14s %8s\n",
			i+1, r.Unit, r.Currency, USD(r.CumulativeFeesUSD), USD(r.FinalBalanceUSD), Rate(r.FeeShare))
	}
}

func WriteTakeRate(w io.Writer, tr analysis.TakeRate) {
	fmt.Fprintf(w, "asset:             %s\n", tr.Name)
	fmt.Fprintf(w, "TVL:               %s\n", USD(tr.TVLUSD))
	fmt.Fprintf(w, "gross APR:         %s\n", Percent(tr.TotalAPR))
	fmt.Fprintf(w, "  management fee:  %s\n", Percent(tr.ManagementFeeAPR))
	fmt.Fprintf(w, "  performance fee: %s\n", Percent(tr.PerformanceFeeAPR))
	fmt.Fprintf(w, "  LP APR:          %s\n", Percent(tr.LPAPR))
	fmt.Fprintf(w, "revenue:           %s/yr\n", USD(tr.TotalRevenue))
	fmt.Fprintf(w, "  DAO:             %s (%s take)\n", USD(tr.DAORevenue), Percent(tr.DAOTakeRate))
	fmt.Fprintf(w, "  operator:        %s (%s take)\n", USD(tr.OperatorRevenue), Percent(tr.OperatorTakeRate))
}
