package analysis

import (
	"testing"
	"time"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = projection.Settings{Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Months: 12}

func testUnits() []model.Unit {
	return []model.Unit{
		{Name: "DUSD", Currency: model.USD, InitialBalance: 1_000_000, ManagementFeeTotal: 0.01, ManagementFeeShare: 0.4, PerformanceFeeTotal: 0.15, PerformanceFeeShare: 0.4, YieldAPR: 0.08, NetReturnMargin: 0.7},
		{Name: "DETH", Currency: model.ETH, InitialBalance: 1000, ManagementFeeTotal: 0.0075, ManagementFeeShare: 0.4, PerformanceFeeTotal: 0.13, PerformanceFeeShare: 0.4, YieldAPR: 0.05, NetReturnMargin: 0.7},
	}
}

var base = model.Scenario{Name: "Base Case", ETHPrice: 3000, BTCPrice: 90000}

func TestCompareScenarios(t *testing.T) {
	variations := []Variation{
		{Name: "Bear", Scenario: base.WithPrices(1500, 45000)},
		{Name: "Base", Scenario: base},
		{Name: "Broken", Scenario: base.WithPrices(-1, 0)},
	}
	res, err := Compare(projection.New(), testUnits(), variations, settings)
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.NoError(t, res[0].Err)
	assert.NoError(t, res[1].Err)
	assert.Less(t, res[0].Summary.CumulativeFeesUSD, res[1].Summary.CumulativeFeesUSD)
	require.Len(t, res[1].Years, 1)
	assert.Equal(t, 2026, res[1].Years[0].Year)

	assert.ErrorIs(t, res[2].Err, model.ErrInvalidRequest)
	assert.Empty(t, res[2].Years)
}

func TestCompareRejectsBadSettings(t *testing.T) {
	_, err := Compare(projection.New(), testUnits(), nil, projection.Settings{Start: settings.Start})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestSweepYield(t *testing.T) {
	points, err := Sweep(projection.New(), testUnits(), base, settings, ParamYieldAPR, []float64{0.02, 0.05, 0.1})
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 0.02, points[0].Value)
	assert.Less(t, points[0].TotalFeesUSD, points[1].TotalFeesUSD)
	assert.Less(t, points[1].TotalFeesUSD, points[2].TotalFeesUSD)
	// yield does not move balances
	assert.Equal(t, points[0].FinalBalanceUSD, points[2].FinalBalanceUSD)
}

func TestSweepPriceLeavesUnitsUntouched(t *testing.T) {
	units := testUnits()
	points, err := Sweep(projection.New(), units, base, settings, ParamETHPrice, []float64{0, 3000})
	require.NoError(t, err)
	// DETH contributes nothing at a zero price
	assert.InDelta(t, 1_000_000.0, points[0].FinalBalanceUSD, 1e-6)
	assert.InDelta(t, 4_000_000.0, points[1].FinalBalanceUSD, 1e-6)
	assert.Equal(t, 0.05, units[1].YieldAPR)
}

func TestSweepDoesNotMutateInput(t *testing.T) {
	units := testUnits()
	_, err := Sweep(projection.New(), units, base, settings, ParamMonthlyGrowthRate, []float64{0.5})
	require.NoError(t, err)
	assert.Zero(t, units[0].MonthlyGrowthRate)
}

func TestSweepErrors(t *testing.T) {
	_, err := Sweep(projection.New(), testUnits(), base, settings, "colour", []float64{1})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)

	_, err = Sweep(projection.New(), testUnits(), base, settings, ParamYieldAPR, nil)
	assert.ErrorIs(t, err, model.ErrInvalidRequest)

	_, err = Sweep(projection.New(), testUnits(), base, settings, ParamYieldAPR, []float64{0.05, 1.5})
	assert.ErrorIs(t, err, model.ErrInvalidUnit)
}

func TestParseParameter(t *testing.T) {
	p, err := ParseParameter(" Yield_APR ")
	require.NoError(t, err)
	assert.Equal(t, ParamYieldAPR, p)
}

func TestRankUnits(t *testing.T) {
	rows, err := projection.New().ProjectAll(testUnits(), base, settings)
	require.NoError(t, err)

	ranked := RankUnits(rows)
	require.Len(t, ranked, 2)
	// DETH: 3M USD of balance vs DUSD 1M
	assert.Equal(t, "DETH", ranked[0].Unit)
	assert.Equal(t, model.ETH, ranked[0].Currency)
	assert.Greater(t, ranked[0].CumulativeFeesUSD, ranked[1].CumulativeFeesUSD)
	assert.InDelta(t, 1.0, ranked[0].FeeShare+ranked[1].FeeShare, 1e-9)
	assert.InDelta(t, 3_000_000.0, ranked[0].FinalBalanceUSD, 1e-6)

	assert.Empty(t, RankUnits(nil))
}

func TestComputeTakeRate(t *testing.T) {
	tr, err := ComputeTakeRate(AssetInput{
		Name:           "USD",
		Balance:        1_000_000,
		Price:          1,
		GrowthAPR:      0.08,
		ManagementFee:  0.01,
		PerformanceFee: 0.15,
	}, DefaultFeeSplit())
	require.NoError(t, err)

	assert.Equal(t, 1_000_000.0, tr.TVLUSD)
	assert.InDelta(t, 8.0, tr.TotalAPR, 1e-9)
	assert.InDelta(t, 1.0, tr.ManagementFeeAPR, 1e-9)
	assert.InDelta(t, 1.2, tr.PerformanceFeeAPR, 1e-9)
	assert.InDelta(t, 5.8, tr.LPAPR, 1e-9)
	assert.InDelta(t, 22_000.0, tr.TotalRevenue, 1e-6)
	assert.InDelta(t, 13_200.0, tr.DAORevenue, 1e-6)
	assert.InDelta(t, 8_800.0, tr.OperatorRevenue, 1e-6)
	assert.InDelta(t, 1.32, tr.DAOTakeRate, 1e-9)
	assert.InDelta(t, 0.88, tr.OperatorTakeRate, 1e-9)
}

func TestComputeTakeRateZeroTVL(t *testing.T) {
	tr, err := ComputeTakeRate(AssetInput{GrowthAPR: 0.05, ManagementFee: 0.01}, DefaultFeeSplit())
	require.NoError(t, err)
	assert.Zero(t, tr.DAOTakeRate)
	assert.Zero(t, tr.OperatorTakeRate)

	_, err = ComputeTakeRate(AssetInput{Balance: -1}, DefaultFeeSplit())
	assert.Error(t, err)
}
