package projection

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"revenue-model/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func usdUnit() model.Unit {
	return model.Unit{
		Name:                "DUSD",
		Currency:            model.USD,
		InitialBalance:      1_000_000,
		ManagementFeeTotal:  0.01,
		ManagementFeeShare:  0.4,
		PerformanceFeeTotal: 0.15,
		PerformanceFeeShare: 0.4,
		YieldAPR:            0.08,
		NetReturnMargin:     0.7,
	}
}

var scenario = model.Scenario{Name: "Base Case", ETHPrice: 3000, BTCPrice: 90000}

func TestProjectSingleMonthFees(t *testing.T) {
	rows, err := New().Project(usdUnit(), scenario, Settings{Start: month(2026, 1), Months: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, month(2026, 1), r.Date)
	assert.Equal(t, 1_000_000.0, r.Balance)
	assert.InDelta(t, 333.3333, r.ManagementFee, 1e-3)
	assert.InDelta(t, 280.0, r.PerformanceFee, 1e-9)
	assert.InDelta(t, 613.3333, r.TotalFeeUSD, 1e-3)
	assert.Equal(t, "DUSD", r.Unit)
	assert.Equal(t, model.USD, r.Currency)
}

func TestProjectLinearGrowth(t *testing.T) {
	u := usdUnit()
	u.MonthlyGrowthRate = 0.1

	rows, err := New().Project(u, scenario, Settings{Start: month(2026, 1), Months: 8})
	require.NoError(t, err)
	require.Len(t, rows, 8)

	step := u.InitialBalance * u.MonthlyGrowthRate
	for k, r := range rows {
		assert.InDelta(t, u.InitialBalance+float64(k)*step, r.Balance, 1e-6, "period %d", k)
	}
}

func TestProjectLaunchGating(t *testing.T) {
	u := usdUnit()
	u.MonthlyGrowthRate = 0.1
	launch := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	u.LaunchDate = &launch

	rows, err := New().Project(u, scenario, Settings{Start: month(2026, 1), Months: 6})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for _, r := range rows[:3] {
		assert.Zero(t, r.Balance)
		assert.Zero(t, r.BalanceUSD)
		assert.Zero(t, r.ManagementFee)
		assert.Zero(t, r.PerformanceFee)
		assert.Zero(t, r.TotalFeeUSD)
		assert.Equal(t, "DUSD", r.Unit)
	}
	assert.Equal(t, month(2026, 4), rows[3].Date)
	assert.Equal(t, u.InitialBalance, rows[3].Balance)
	assert.InDelta(t, u.InitialBalance*1.1, rows[4].Balance, 1e-6)
	assert.InDelta(t, u.InitialBalance*1.2, rows[5].Balance, 1e-6)
}

func TestProjectLaunchBeforeStart(t *testing.T) {
	u := usdUnit()
	u.MonthlyGrowthRate = 0.05
	launch := month(2025, 6)
	u.LaunchDate = &launch

	rows, err := New().Project(u, scenario, Settings{Start: month(2026, 1), Months: 3})
	require.NoError(t, err)
	assert.Equal(t, u.InitialBalance, rows[0].Balance)
	assert.InDelta(t, u.InitialBalance*1.05, rows[1].Balance, 1e-6)
}

func TestProjectUSDConversionAndTotals(t *testing.T) {
	units := []model.Unit{usdUnit(), usdUnit(), usdUnit()}
	units[1].Name, units[1].Currency, units[1].InitialBalance = "DETH", model.ETH, 9300
	units[2].Name, units[2].Currency, units[2].InitialBalance = "DBIT", model.BTC, 200

	for _, u := range units {
		u.MonthlyGrowthRate = 0.1
		rows, err := New().Project(u, scenario, Settings{Start: month(2026, 1), Months: 12})
		require.NoError(t, err)

		price, err := scenario.Price(u.Currency)
		require.NoError(t, err)
		for _, r := range rows {
			assert.Equal(t, r.Balance*price, r.BalanceUSD)
			assert.Equal(t, r.ManagementFee*price, r.ManagementFeeUSD)
			assert.Equal(t, r.PerformanceFee*price, r.PerformanceFeeUSD)
			assert.InDelta(t, r.ManagementFeeUSD+r.PerformanceFeeUSD, r.TotalFeeUSD, 1e-9)
			assert.InDelta(t, r.TotalFee()*price, r.TotalFeeUSD, 1e-6)
		}
	}
}

func TestProjectZeroPrice(t *testing.T) {
	u := usdUnit()
	u.Currency = model.ETH

	rows, err := New().Project(u, model.Scenario{ETHPrice: 0, BTCPrice: 1}, Settings{Start: month(2026, 1), Months: 2})
	require.NoError(t, err)
	assert.Equal(t, u.InitialBalance, rows[0].Balance)
	assert.Zero(t, rows[0].BalanceUSD)
	assert.Zero(t, rows[0].TotalFeeUSD)
	assert.NotZero(t, rows[0].ManagementFee)
}

func TestProjectEmployeeCapital(t *testing.T) {
	u := usdUnit()
	u.EmployeeCapital = 0.25

	rows, err := New().Project(u, scenario, Settings{Start: month(2026, 1), Months: 1})
	require.NoError(t, err)
	assert.InDelta(t, 210.0, rows[0].PerformanceFee, 1e-9)
}

func TestProjectRejectsBadInput(t *testing.T) {
	settings := Settings{Start: month(2026, 1), Months: 12}

	tests := []struct {
		name     string
		unit     func() model.Unit
		scenario model.Scenario
		settings Settings
		wantErr  error
	}{
		{
			name:     "unknown currency",
			unit:     func() model.Unit { u := usdUnit(); u.Currency = "XRP"; return u },
			scenario: scenario,
			settings: settings,
			wantErr:  model.ErrConfiguration,
		},
		{
			name:     "negative balance",
			unit:     func() model.Unit { u := usdUnit(); u.InitialBalance = -10; return u },
			scenario: scenario,
			settings: settings,
			wantErr:  model.ErrInvalidUnit,
		},
		{
			name:     "zero months",
			unit:     usdUnit,
			scenario: scenario,
			settings: Settings{Start: month(2026, 1)},
			wantErr:  model.ErrInvalidRequest,
		},
		{
			name:     "negative price",
			unit:     usdUnit,
			scenario: model.Scenario{ETHPrice: -1},
			settings: settings,
			wantErr:  model.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := New().Project(tt.unit(), tt.scenario, tt.settings)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, rows)
		})
	}
}

func TestProjectAllConcatenatesInOrder(t *testing.T) {
	a := usdUnit()
	b := usdUnit()
	b.Name, b.Currency, b.InitialBalance = "DETH", model.ETH, 9300

	e := &Engine{Workers: 2}
	rows, err := e.ProjectAll([]model.Unit{a, b}, scenario, Settings{Start: month(2026, 1), Months: 4})
	require.NoError(t, err)
	require.Len(t, rows, 8)
	for i := 0; i < 4; i++ {
		assert.Equal(t, "DUSD", rows[i].Unit)
		assert.Equal(t, "DETH", rows[4+i].Unit)
	}
}

func TestProjectAllEmptyAndInvalid(t *testing.T) {
	rows, err := New().ProjectAll(nil, scenario, DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, rows)

	bad := usdUnit()
	bad.YieldAPR = 3
	rows, err = New().ProjectAll([]model.Unit{usdUnit(), bad}, scenario, DefaultSettings())
	assert.ErrorIs(t, err, model.ErrInvalidUnit)
	assert.Nil(t, rows)
}

func TestProjectAllRejectsDuplicateNames(t *testing.T) {
	small := usdUnit()
	small.InitialBalance = 10

	rows, err := New().ProjectAll([]model.Unit{usdUnit(), small}, scenario, DefaultSettings())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidUnit)
	var fe *model.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "units[1].name", fe.Field)
	assert.Nil(t, rows)
}

func TestSettingsPeriods(t *testing.T) {
	s := Settings{Start: time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC), Months: 3}
	assert.Equal(t, []time.Time{month(2026, 11), month(2026, 12), month(2027, 1)}, s.Periods())

	d := DefaultSettings()
	assert.Equal(t, 36, d.Months)
	assert.Equal(t, month(2026, 1), d.Start)
}

func TestWriteCSV(t *testing.T) {
	rows, err := New().Project(usdUnit(), scenario, Settings{Start: month(2026, 1), Months: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, csvHeader, recs[0])
	assert.Equal(t, "2026-01", recs[1][0])
	assert.Equal(t, "DUSD", recs[1][1])
	assert.Equal(t, "1000000.000000", recs[1][3])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rows.csv")
	require.NoError(t, WriteCSVFile(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "total_fee_usd")
}
