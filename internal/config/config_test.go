package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"revenue-model/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	units, err := p.ModelUnits()
	require.NoError(t, err)
	assert.Len(t, units, 7)
	assert.Nil(t, units[0].LaunchDate)
	require.NotNil(t, units[3].LaunchDate)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *units[3].LaunchDate)

	s, err := p.Settings()
	require.NoError(t, err)
	assert.Equal(t, 36, s.Months)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plan.yaml", `
scenario:
  eth_price: 2500
  btc_price: 80000
units:
  - name: DUSD
    currency: usd
    initial_balance: 1000000
    management_fee_total: 0.01
    management_fee_share: 0.4
    performance_fee_total: 0.15
    performance_fee_share: 0.4
    yield_apr: 0.08
    net_return_margin: 0.7
`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Base Case", p.Scenario.Name)
	assert.Equal(t, "2026-01", p.Projection.Start)
	assert.Equal(t, 36, p.Projection.Months)

	units, err := p.ModelUnits()
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, model.USD, units[0].Currency)
	assert.Equal(t, 2500.0, p.ToScenario().ETHPrice)
}

func TestLoadMergesUnitsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "units.yaml", `
units:
  - name: DETH
    currency: ETH
    initial_balance: 9300
    monthly_growth_rate: 0.1
    management_fee_total: 0.0075
    management_fee_share: 0.4
    performance_fee_total: 0.13
    performance_fee_share: 0.4
    yield_apr: 0.05
    net_return_margin: 0.7
`)
	path := writeFile(t, dir, "plan.yaml", `
units_file: units.yaml
projection:
  start: "2027-03"
  months: 12
units:
  - name: DETH
    yield_apr: 0.06
  - name: DBIT
    currency: BTC
    launch_date: "2027-06"
    initial_balance: 200
    yield_apr: 0.03
`)
	p, err := Load(path)
	require.NoError(t, err)
	require.Len(t, p.Units, 2)
	assert.Equal(t, 0.06, p.Units[0].YieldAPR)
	assert.Equal(t, 9300.0, p.Units[0].InitialBalance)
	assert.Equal(t, "DBIT", p.Units[1].Name)

	s, err := p.Settings()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), s.Start)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Plan)
		wantErr error
	}{
		{name: "valid", mutate: func(p *Plan) {}},
		{name: "unknown currency", mutate: func(p *Plan) { p.Units[0].Currency = "EUR" }, wantErr: model.ErrConfiguration},
		{name: "rate out of range", mutate: func(p *Plan) { p.Units[1].YieldAPR = 2 }, wantErr: model.ErrInvalidUnit},
		{name: "bad launch date", mutate: func(p *Plan) { p.Units[1].LaunchDate = "soon" }, wantErr: model.ErrInvalidUnit},
		{name: "duplicate name", mutate: func(p *Plan) { p.Units[1].Name = p.Units[0].Name }, wantErr: model.ErrInvalidUnit},
		{name: "zero months", mutate: func(p *Plan) { p.Projection.Months = 0 }, wantErr: model.ErrInvalidRequest},
		{name: "bad start", mutate: func(p *Plan) { p.Projection.Start = "Jan" }, wantErr: model.ErrInvalidRequest},
		{name: "negative price", mutate: func(p *Plan) { p.Scenario.BTCPrice = -1 }, wantErr: model.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plan.yaml")
	require.NoError(t, Default().Save(path))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Units, p.Units)
}

func TestFromModel(t *testing.T) {
	uc := Default().Units[4]
	u, err := uc.ToModel()
	require.NoError(t, err)
	assert.Equal(t, uc, FromModel(u))
}

func TestMergeUnit(t *testing.T) {
	base := UnitConfig{Name: "A", Currency: "USD", InitialBalance: 10, YieldAPR: 0.05}
	out := MergeUnit(base, UnitConfig{YieldAPR: 0.07, LaunchDate: "2026-09"})
	assert.Equal(t, "A", out.Name)
	assert.Equal(t, 10.0, out.InitialBalance)
	assert.Equal(t, 0.07, out.YieldAPR)
	assert.Equal(t, "2026-09", out.LaunchDate)
}

func TestExamplePlansLoad(t *testing.T) {
	base, err := Load("../../examples/plans/base.yaml")
	require.NoError(t, err)
	assert.Len(t, base.Units, 5)
	assert.Equal(t, "DNEW 1", base.Units[4].Name)

	bull, err := Load("../../examples/plans/bull.yaml")
	require.NoError(t, err)
	require.Len(t, bull.Units, 4)
	assert.Equal(t, 0.07, bull.Units[0].YieldAPR)
	assert.Equal(t, 0.0075, bull.Units[0].ManagementFeeTotal)
	assert.Equal(t, 0.15, bull.Units[1].MonthlyGrowthRate)
}
