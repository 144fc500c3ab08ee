package aggregate

import "revenue-model/internal/projection"

// Summary is the headline view of a dataset.
type Summary struct {
	Periods int

	// Figures for the last projected period.
	BalanceUSD    float64
	MonthlyFeeUSD float64
	AnnualFeeUSD  float64

	// AvgFeePct is the mean of the annualized fee percentage across periods.
	AvgFeePct float64

	CumulativeFeesUSD float64
}

func Summarize(rows []projection.Row) Summary {
	fp := FeePercentageAnnualized(rows)
	if len(fp) == 0 {
		return Summary{}
	}

	s := Summary{Periods: len(fp)}
	var pctSum float64
	for _, p := range fp {
		pctSum += p.FeePctAnnualized
		s.CumulativeFeesUSD += p.TotalFeeUSD
	}
	last := fp[len(fp)-1]
	s.BalanceUSD = last.BalanceUSD
	s.MonthlyFeeUSD = last.TotalFeeUSD
	s.AnnualFeeUSD = last.TotalFeeUSD * 12
	s.AvgFeePct = pctSum / float64(len(fp))
	return s
}

// Report bundles a dataset with every derived view.
type Report struct {
	Rows       []projection.Row
	ByCurrency []CurrencyRow
	Fees       []PeriodFeeRow
	Years      []YearRow
	FeePct     []FeePctRow
	ByUnit     []UnitRow
	Summary    Summary
}

func Build(rows []projection.Row) (*Report, error) {
	byCurrency, err := ByCurrency(rows)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []projection.Row{}
	}
	return &Report{
		Rows:       rows,
		ByCurrency: byCurrency,
		Fees:       FeesByPeriod(rows),
		Years:      ByYear(rows),
		FeePct:     FeePercentageAnnualized(rows),
		ByUnit:     ByUnit(rows),
		Summary:    Summarize(rows),
	}, nil
}
