package aggregate

import (
	"math"
	"testing"
	"time"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func row(d time.Time, unit string, c model.Currency, bal, balUSD, mgmtUSD, perfUSD float64) projection.Row {
	return projection.Row{
		Date:              d,
		Unit:              unit,
		Currency:          c,
		Balance:           bal,
		BalanceUSD:        balUSD,
		ManagementFee:     mgmtUSD,
		ManagementFeeUSD:  mgmtUSD,
		PerformanceFeeUSD: perfUSD,
		TotalFeeUSD:       mgmtUSD + perfUSD,
	}
}

func TestEmptyDataset(t *testing.T) {
	bc, err := ByCurrency(nil)
	require.NoError(t, err)
	assert.NotNil(t, bc)
	assert.Empty(t, bc)

	assert.NotNil(t, FeesByPeriod(nil))
	assert.Empty(t, FeesByPeriod(nil))
	assert.NotNil(t, ByYear(nil))
	assert.Empty(t, ByYear(nil))
	assert.NotNil(t, FeePercentageAnnualized(nil))
	assert.Empty(t, FeePercentageAnnualized(nil))
	assert.NotNil(t, ByUnit(nil))
	assert.Equal(t, Summary{}, Summarize(nil))

	rep, err := Build(nil)
	require.NoError(t, err)
	assert.NotNil(t, rep.Rows)
	assert.Empty(t, rep.Years)
}

func TestByCurrencyAndFeesByPeriodSplitCurrencies(t *testing.T) {
	jan := month(2026, 1)
	rows := []projection.Row{
		row(jan, "DUSD", model.USD, 100, 100, 1, 2),
		row(jan, "DETH", model.ETH, 10, 30000, 3, 4),
		row(jan, "DUSD2", model.USD, 50, 50, 5, 6),
	}

	bc, err := ByCurrency(rows)
	require.NoError(t, err)
	require.Len(t, bc, 2)
	assert.Equal(t, model.ETH, bc[0].Currency)
	assert.Equal(t, 10.0, bc[0].Balance)
	assert.Equal(t, 30000.0, bc[0].BalanceUSD)
	assert.Equal(t, model.USD, bc[1].Currency)
	assert.Equal(t, 150.0, bc[1].Balance)
	assert.Equal(t, 150.0, bc[1].BalanceUSD)

	fees := FeesByPeriod(rows)
	require.Len(t, fees, 1)
	assert.Equal(t, jan, fees[0].Date)
	assert.Equal(t, 9.0, fees[0].ManagementFeeUSD)
	assert.Equal(t, 12.0, fees[0].PerformanceFeeUSD)
	assert.Equal(t, 21.0, fees[0].TotalFeeUSD)
	assert.Equal(t, 30150.0, fees[0].BalanceUSD)
}

func TestByCurrencyOrderedByPeriod(t *testing.T) {
	rows := []projection.Row{
		row(month(2026, 2), "A", model.USD, 1, 1, 0, 0),
		row(month(2026, 1), "A", model.USD, 1, 1, 0, 0),
		row(month(2026, 1), "B", model.BTC, 1, 9, 0, 0),
	}
	bc, err := ByCurrency(rows)
	require.NoError(t, err)
	require.Len(t, bc, 3)
	assert.Equal(t, month(2026, 1), bc[0].Date)
	assert.Equal(t, model.BTC, bc[0].Currency)
	assert.Equal(t, model.USD, bc[1].Currency)
	assert.Equal(t, month(2026, 2), bc[2].Date)
}

func TestByCurrencyRejectsUnknownCurrency(t *testing.T) {
	_, err := ByCurrency([]projection.Row{row(month(2026, 1), "X", "DOGE", 1, 1, 0, 0)})
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = Build([]projection.Row{row(month(2026, 1), "X", "DOGE", 1, 1, 0, 0)})
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestByYearUsesLastPeriodBalance(t *testing.T) {
	var rows []projection.Row
	// 2026: Jan..Dec with balance 100*m, 2027: Jan..Mar with balance 1000
	for m := 1; m <= 12; m++ {
		rows = append(rows, row(month(2026, time.Month(m)), "A", model.USD, float64(100*m), float64(100*m), 1, 1))
	}
	for m := 1; m <= 3; m++ {
		rows = append(rows, row(month(2027, time.Month(m)), "A", model.USD, 1000, 1000, 2, 3))
	}

	years := ByYear(rows)
	require.Len(t, years, 2)

	y := years[0]
	assert.Equal(t, 2026, y.Year)
	assert.Equal(t, 1200.0, y.EndOfYearBalanceUSD)
	assert.Equal(t, 12.0, y.ManagementFeesUSD)
	assert.Equal(t, 12.0, y.PerformanceFeesUSD)
	assert.Equal(t, 24.0, y.TotalFeesUSD)
	// mean balance = 650
	assert.InDelta(t, 24.0/650.0*100, y.AvgFeePct, 1e-9)

	y = years[1]
	assert.Equal(t, 2027, y.Year)
	assert.Equal(t, 1000.0, y.EndOfYearBalanceUSD)
	assert.Equal(t, 15.0, y.TotalFeesUSD)
	assert.InDelta(t, 1.5, y.AvgFeePct, 1e-9)
}

func TestByYearSumsUnitsBeforeTakingEndBalance(t *testing.T) {
	rows := []projection.Row{
		row(month(2026, 11), "A", model.USD, 10, 10, 0, 0),
		row(month(2026, 12), "A", model.USD, 20, 20, 0, 0),
		row(month(2026, 11), "B", model.USD, 5, 5, 0, 0),
		row(month(2026, 12), "B", model.USD, 7, 7, 0, 0),
	}
	years := ByYear(rows)
	require.Len(t, years, 1)
	assert.Equal(t, 27.0, years[0].EndOfYearBalanceUSD)
}

func TestZeroBalanceGivesZeroPercent(t *testing.T) {
	rows := []projection.Row{
		row(month(2026, 1), "A", model.USD, 0, 0, 0, 0),
		row(month(2026, 2), "A", model.USD, 0, 0, 5, 0),
	}

	for _, fp := range FeePercentageAnnualized(rows) {
		assert.Equal(t, 0.0, fp.FeePctAnnualized)
		assert.False(t, math.IsNaN(fp.FeePctAnnualized))
	}
	years := ByYear(rows)
	require.Len(t, years, 1)
	assert.Equal(t, 0.0, years[0].AvgFeePct)
	assert.Equal(t, 0.0, Summarize(rows).AvgFeePct)
}

func TestFeePercentageAnnualized(t *testing.T) {
	rows := []projection.Row{
		row(month(2026, 1), "A", model.USD, 1000, 1000, 5, 5),
	}
	fp := FeePercentageAnnualized(rows)
	require.Len(t, fp, 1)
	assert.InDelta(t, 10.0/1000*12*100, fp[0].FeePctAnnualized, 1e-9)
	assert.Equal(t, 10.0, fp[0].TotalFeeUSD)
	assert.Equal(t, 1000.0, fp[0].BalanceUSD)
}

func TestByUnitKeepsFirstAppearanceOrder(t *testing.T) {
	rows := []projection.Row{
		row(month(2026, 1), "Zeta", model.USD, 1, 1, 1, 0),
		row(month(2026, 2), "Zeta", model.USD, 2, 2, 1, 0),
		row(month(2026, 1), "Alpha", model.ETH, 1, 3000, 1, 1),
		row(month(2026, 2), "Alpha", model.ETH, 1, 3000, 1, 1),
	}
	units := ByUnit(rows)
	require.Len(t, units, 4)
	assert.Equal(t, "Zeta", units[0].Unit)
	assert.Equal(t, "Alpha", units[1].Unit)
	assert.Equal(t, month(2026, 2), units[2].Date)
	assert.Equal(t, 3000.0, units[1].BalanceUSD)
	assert.Equal(t, 2.0, units[1].TotalFeeUSD)
}

func TestSummarize(t *testing.T) {
	rows := []projection.Row{
		row(month(2026, 1), "A", model.USD, 1000, 1000, 5, 5),
		row(month(2026, 2), "A", model.USD, 2000, 2000, 10, 10),
	}
	s := Summarize(rows)
	assert.Equal(t, 2, s.Periods)
	assert.Equal(t, 2000.0, s.BalanceUSD)
	assert.Equal(t, 20.0, s.MonthlyFeeUSD)
	assert.Equal(t, 240.0, s.AnnualFeeUSD)
	assert.Equal(t, 30.0, s.CumulativeFeesUSD)
	assert.InDelta(t, 12.0, s.AvgFeePct, 1e-9)
}

func TestBuildFromEngine(t *testing.T) {
	units := []model.Unit{
		{Name: "DUSD", Currency: model.USD, InitialBalance: 1_000_000, ManagementFeeTotal: 0.01, ManagementFeeShare: 0.4, PerformanceFeeTotal: 0.15, PerformanceFeeShare: 0.4, YieldAPR: 0.08, NetReturnMargin: 0.7},
		{Name: "DETH", Currency: model.ETH, InitialBalance: 100, ManagementFeeTotal: 0.0075, ManagementFeeShare: 0.4, PerformanceFeeTotal: 0.13, PerformanceFeeShare: 0.4, YieldAPR: 0.05, NetReturnMargin: 0.7},
	}
	sc := model.Scenario{ETHPrice: 3000, BTCPrice: 90000}
	rows, err := projection.New().ProjectAll(units, sc, projection.Settings{Start: month(2026, 1), Months: 24})
	require.NoError(t, err)

	rep, err := Build(rows)
	require.NoError(t, err)
	assert.Len(t, rep.Rows, 48)
	assert.Len(t, rep.ByCurrency, 48)
	assert.Len(t, rep.Fees, 24)
	assert.Len(t, rep.Years, 2)
	assert.Len(t, rep.FeePct, 24)
	assert.Len(t, rep.ByUnit, 48)
	assert.InDelta(t, 1_300_000.0, rep.Years[0].EndOfYearBalanceUSD, 1e-6)
}

func TestPeriodsFarInTheFuture(t *testing.T) {
	rows := []projection.Row{
		row(month(2300, 1), "DUSD", model.USD, 100, 100, 1, 0),
		row(month(2300, 1), "DETH", model.ETH, 1, 3000, 2, 0),
		row(month(2300, 2), "DUSD", model.USD, 110, 110, 1, 0),
		row(month(2300, 2), "DETH", model.ETH, 1, 3000, 2, 0),
		row(month(2301, 1), "DUSD", model.USD, 120, 120, 1, 0),
	}

	fees := FeesByPeriod(rows)
	require.Len(t, fees, 3)
	assert.Equal(t, month(2300, 1), fees[0].Date)
	assert.InDelta(t, 3100, fees[0].BalanceUSD, 1e-9)
	assert.InDelta(t, 3, fees[0].TotalFeeUSD, 1e-9)
	assert.Equal(t, month(2301, 1), fees[2].Date)

	bc, err := ByCurrency(rows)
	require.NoError(t, err)
	assert.Len(t, bc, 5)

	assert.Len(t, ByUnit(rows), 5)

	years := ByYear(rows)
	require.Len(t, years, 2)
	assert.Equal(t, 2300, years[0].Year)
	assert.InDelta(t, 3110, years[0].EndOfYearBalanceUSD, 1e-9)
}
