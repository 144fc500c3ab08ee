package report

import (
	"bytes"
	"math"
	"testing"

	"revenue-model/internal/aggregate"
	"revenue-model/internal/analysis"

	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{999.994, "$999.99"},
		{1_500, "$1.50K"},
		{1_234_567, "$1.23M"},
		{2_500_000_000, "$2.50B"},
		{-1_500, "-$1.50K"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, USD(tt.in), "%v", tt.in)
	}
}

func TestUSDShort(t *testing.T) {
	assert.Equal(t, "$55M", USDShort(55_000_000))
	assert.Equal(t, "$1.3B", USDShort(1_300_000_000))
	assert.Equal(t, "$12K", USDShort(12_300))
	assert.Equal(t, "$7", USDShort(7.2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "1.32%", Percent(1.32))
	assert.Equal(t, "0.00%", Percent(0))
	assert.Equal(t, "1.50%", Rate(0.015))
	assert.Equal(t, "n/a", Rate(math.Inf(1)))
}

func TestWriteYears(t *testing.T) {
	var buf bytes.Buffer
	WriteYears(&buf, []aggregate.YearRow{{Year: 2026, EndOfYearBalanceUSD: 1_300_000, TotalFeesUSD: 12_000, AvgFeePct: 1.1}})
	out := buf.String()
	assert.Contains(t, out, "2026")
	assert.Contains(t, out, "$1.30M")
	assert.Contains(t, out, "$12.00K")
	assert.Contains(t, out, "1.10%")
}

func TestWriteComparisonShowsErrors(t *testing.T) {
	var buf bytes.Buffer
	WriteComparison(&buf, []analysis.ComparisonResult{
		{Name: "bull", Summary: aggregate.Summary{BalanceUSD: 2_000_000}},
		{Name: "broken", Err: assert.AnError},
	})
	assert.Contains(t, buf.String(), "$2.00M")
	assert.Regexp(t, `broken\s+error: `, buf.String())
}

func TestWriteTakeRate(t *testing.T) {
	var buf bytes.Buffer
	WriteTakeRate(&buf, analysis.TakeRate{Name: "USDC", TVLUSD: 1_000_000, DAORevenue: 13_200, DAOTakeRate: 1.32})
	assert.Contains(t, buf.String(), "$13.20K (1.32% take)")
}
