package analysis

import (
	"fmt"
	"strings"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"
)

// Parameter names a field a sweep overrides.
type Parameter string

const (
	ParamYieldAPR            Parameter = "yield_apr"
	ParamMonthlyGrowthRate   Parameter = "monthly_growth_rate"
	ParamManagementFeeTotal  Parameter = "management_fee_total"
	ParamPerformanceFeeTotal Parameter = "performance_fee_total"
	ParamNetReturnMargin     Parameter = "net_return_margin"
	ParamETHPrice            Parameter = "eth_price"
	ParamBTCPrice            Parameter = "btc_price"
)

var Parameters = []Parameter{
	ParamYieldAPR,
	ParamMonthlyGrowthRate,
	ParamManagementFeeTotal,
	ParamPerformanceFeeTotal,
	ParamNetReturnMargin,
	ParamETHPrice,
	ParamBTCPrice,
}

func ParseParameter(s string) (Parameter, error) {
	p := Parameter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Parameters {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sweep parameter %q", model.ErrInvalidRequest, s)
}

type SweepPoint struct {
	Value float64

	TotalFeesUSD      float64
	FinalBalanceUSD   float64
	FinalAnnualFeeUSD float64
	AvgFeePct         float64
}

// Sweep re-runs the projection once per value with param overridden on the
// scenario or on every unit. Any invalid value fails the sweep.
func Sweep(e *projection.Engine, units []model.Unit, sc model.Scenario, settings projection.Settings, param Parameter, values []float64) ([]SweepPoint, error) {
	if _, err := ParseParameter(string(param)); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one value", model.ErrInvalidRequest)
	}

	out := make([]SweepPoint, 0, len(values))
	for _, v := range values {
		us, s := apply(units, sc, param, v)
		rep, err := run(e, us, s, settings)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", param, v, err)
		}
		out = append(out, SweepPoint{
			Value:             v,
			TotalFeesUSD:      rep.Summary.CumulativeFeesUSD,
			FinalBalanceUSD:   rep.Summary.BalanceUSD,
			FinalAnnualFeeUSD: rep.Summary.AnnualFeeUSD,
			AvgFeePct:         rep.Summary.AvgFeePct,
		})
	}
	return out, nil
}

func apply(units []model.Unit, sc model.Scenario, param Parameter, v float64) ([]model.Unit, model.Scenario) {
	switch param {
	case ParamETHPrice:
		return units, sc.WithPrices(v, sc.BTCPrice)
	case ParamBTCPrice:
		return units, sc.WithPrices(sc.ETHPrice, v)
	}

	out := make([]model.Unit, len(units))
	for i, u := range units {
		u = u.Clone()
		switch param {
		case ParamYieldAPR:
			u.YieldAPR = v
		case ParamMonthlyGrowthRate:
			u.MonthlyGrowthRate = v
		case ParamManagementFeeTotal:
			u.ManagementFeeTotal = v
		case ParamPerformanceFeeTotal:
			u.PerformanceFeeTotal = v
		case ParamNetReturnMargin:
			u.NetReturnMargin = v
		}
		out[i] = u
	}
	return out, sc
}
