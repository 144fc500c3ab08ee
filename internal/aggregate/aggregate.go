// Package aggregate rolls projection rows up into currency, period, unit
// and calendar-year views. Every function is pure and returns an empty,
// non-nil slice for an empty dataset.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"
)

// CurrencyRow is the total balance held in one currency for one period.
type CurrencyRow struct {
	Date       time.Time
	Currency   model.Currency
	Balance    float64
	BalanceUSD float64
}

// PeriodFeeRow sums every unit for one period.
// ManagementFee adds native amounts across currencies and is only
// meaningful for single-currency datasets.
type PeriodFeeRow struct {
	Date              time.Time
	ManagementFee     float64
	ManagementFeeUSD  float64
	PerformanceFeeUSD float64
	TotalFeeUSD       float64
	BalanceUSD        float64
}

type YearRow struct {
	Year                int
	EndOfYearBalanceUSD float64
	ManagementFeesUSD   float64
	PerformanceFeesUSD  float64
	TotalFeesUSD        float64
	// AvgFeePct is total fees over the mean period balance, in percent.
	AvgFeePct float64
}

type FeePctRow struct {
	Date             time.Time
	FeePctAnnualized float64
	TotalFeeUSD      float64
	BalanceUSD       float64
}

// UnitRow is one unit's USD figures for one period.
type UnitRow struct {
	Date        time.Time
	Unit        string
	Currency    model.Currency
	BalanceUSD  float64
	TotalFeeUSD float64
}

// ByCurrency groups rows by (period, currency), ordered by period then currency.
// A row with an unknown currency fails the whole call.
func ByCurrency(rows []projection.Row) ([]CurrencyRow, error) {
	type key struct {
		period   int
		currency model.Currency
	}
	groups := map[key]*CurrencyRow{}
	for _, r := range rows {
		if !r.Currency.Valid() {
			return nil, fmt.Errorf("%w: row for %q has unknown currency %q", model.ErrConfiguration, r.Unit, r.Currency)
		}
		k := key{period: periodKey(r.Date), currency: r.Currency}
		g, ok := groups[k]
		if !ok {
			g = &CurrencyRow{Date: r.Date, Currency: r.Currency}
			groups[k] = g
		}
		g.Balance += r.Balance
		g.BalanceUSD += r.BalanceUSD
	}

	out := make([]CurrencyRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Currency < out[j].Currency
	})
	return out, nil
}

// FeesByPeriod sums fees and USD balance across all units, one row per period.
func FeesByPeriod(rows []projection.Row) []PeriodFeeRow {
	byDate := map[int]*PeriodFeeRow{}
	for _, r := range rows {
		k := periodKey(r.Date)
		p, ok := byDate[k]
		if !ok {
			p = &PeriodFeeRow{Date: r.Date}
			byDate[k] = p
		}
		p.ManagementFee += r.ManagementFee
		p.ManagementFeeUSD += r.ManagementFeeUSD
		p.PerformanceFeeUSD += r.PerformanceFeeUSD
		p.TotalFeeUSD += r.TotalFeeUSD
		p.BalanceUSD += r.BalanceUSD
	}

	out := make([]PeriodFeeRow, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ByYear rolls period totals into calendar years, ascending.
// The end-of-year balance is the total of the latest period in the year,
// not a sum over the year.
func ByYear(rows []projection.Row) []YearRow {
	periods := FeesByPeriod(rows)

	out := []YearRow{}
	var balanceSum float64
	var n int
	flush := func() {
		if len(out) == 0 {
			return
		}
		y := &out[len(out)-1]
		mean := balanceSum / float64(n)
		y.AvgFeePct = pct(y.TotalFeesUSD, mean)
	}

	for _, p := range periods {
		year := p.Date.Year()
		if len(out) == 0 || out[len(out)-1].Year != year {
			flush()
			out = append(out, YearRow{Year: year})
			balanceSum, n = 0, 0
		}
		y := &out[len(out)-1]
		// periods are sorted, so the last one seen is the latest in the year
		y.EndOfYearBalanceUSD = p.BalanceUSD
		y.ManagementFeesUSD += p.ManagementFeeUSD
		y.PerformanceFeesUSD += p.PerformanceFeeUSD
		y.TotalFeesUSD += p.TotalFeeUSD
		balanceSum += p.BalanceUSD
		n++
	}
	flush()
	return out
}

// FeePercentageAnnualized is each period's total fee over its balance,
// times 12, in percent. A zero balance yields 0.
func FeePercentageAnnualized(rows []projection.Row) []FeePctRow {
	periods := FeesByPeriod(rows)
	out := make([]FeePctRow, 0, len(periods))
	for _, p := range periods {
		out = append(out, FeePctRow{
			Date:             p.Date,
			FeePctAnnualized: pct(p.TotalFeeUSD, p.BalanceUSD) * 12,
			TotalFeeUSD:      p.TotalFeeUSD,
			BalanceUSD:       p.BalanceUSD,
		})
	}
	return out
}

// ByUnit groups rows by (period, unit), ordered by period and then by the
// order units first appear in the dataset.
func ByUnit(rows []projection.Row) []UnitRow {
	type key struct {
		period int
		unit   string
	}
	order := map[string]int{}
	groups := map[key]*UnitRow{}
	for _, r := range rows {
		if _, ok := order[r.Unit]; !ok {
			order[r.Unit] = len(order)
		}
		k := key{period: periodKey(r.Date), unit: r.Unit}
		g, ok := groups[k]
		if !ok {
			g = &UnitRow{Date: r.Date, Unit: r.Unit, Currency: r.Currency}
			groups[k] = g
		}
		g.BalanceUSD += r.BalanceUSD
		g.TotalFeeUSD += r.TotalFeeUSD
	}

	out := make([]UnitRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return order[out[i].Unit] < order[out[j].Unit]
	})
	return out
}

// periodKey identifies the calendar month of t. Rows always carry a month
// start, so the month is the whole identity of a period.
func periodKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// pct returns num/den*100, or 0 when den is 0.
func pct(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}
