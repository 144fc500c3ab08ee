package projection

import (
	"fmt"
	"runtime"

	"revenue-model/internal/model"

	"golang.org/x/sync/errgroup"
)

type Engine struct {
	// Workers bounds concurrent unit projections in ProjectAll; <= 0 means GOMAXPROCS.
	Workers int
}

func New() *Engine { return &Engine{} }

// Project produces exactly settings.Months rows for one unit.
// All inputs are validated before any row is produced.
func (e *Engine) Project(u model.Unit, sc model.Scenario, settings Settings) ([]Row, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	rate, err := unitRate(u, sc)
	if err != nil {
		return nil, err
	}

	launch, gated := u.LaunchMonth()
	mgmtRate := u.ManagementFeeRate()
	perfRate := u.PerformanceFeeRate()
	growth := u.InitialBalance * u.MonthlyGrowthRate

	periods := settings.Periods()
	rows := make([]Row, 0, len(periods))
	balance := u.InitialBalance

	for _, month := range periods {
		if gated && month.Before(launch) {
			rows = append(rows, Row{Date: month, Unit: u.Name, Currency: u.Currency})
			continue
		}
		if gated && month.Equal(launch) {
			balance = u.InitialBalance
		}

		mgmt := balance * mgmtRate / 12
		monthlyYield := balance * u.YieldAPR / 12
		perf := perfRate * monthlyYield * u.NetReturnMargin * (1 - u.EmployeeCapital)

		mgmtUSD := mgmt * rate
		perfUSD := perf * rate

		rows = append(rows, Row{
			Date:     month,
			Unit:     u.Name,
			Currency: u.Currency,

			Balance:    balance,
			BalanceUSD: balance * rate,

			ManagementFee:    mgmt,
			ManagementFeeUSD: mgmtUSD,

			PerformanceFee:    perf,
			PerformanceFeeUSD: perfUSD,

			TotalFeeUSD: mgmtUSD + perfUSD,
		})

		// Growth is a fixed increment of the original balance, never compounding.
		balance += growth
	}

	return rows, nil
}

// ProjectAll projects every unit and concatenates the series in input order.
// Units are independent, so they are computed concurrently. Any invalid unit
// fails the whole call and no rows are returned.
func (e *Engine) ProjectAll(units []model.Unit, sc model.Scenario, settings Settings) ([]Row, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	// Validate in order first so the reported error does not depend on scheduling.
	// Rows are keyed by unit name downstream, so names must be unique.
	seen := make(map[string]bool, len(units))
	for i, u := range units {
		if _, err := unitRate(u, sc); err != nil {
			return nil, err
		}
		if seen[u.Name] {
			return nil, &model.FieldError{
				Kind:   model.ErrInvalidUnit,
				Field:  fmt.Sprintf("units[%d].name", i),
				Reason: fmt.Sprintf("duplicate unit name %q", u.Name),
			}
		}
		seen[u.Name] = true
	}
	if len(units) == 0 {
		return []Row{}, nil
	}

	series := make([][]Row, len(units))
	var g errgroup.Group
	g.SetLimit(e.workers())
	for i := range units {
		i := i
		g.Go(func() error {
			rows, err := e.Project(units[i], sc, settings)
			if err != nil {
				return err
			}
			series[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(units)*settings.Months)
	for _, s := range series {
		out = append(out, s...)
	}
	return out, nil
}

func unitRate(u model.Unit, sc model.Scenario) (float64, error) {
	if err := u.Validate(); err != nil {
		return 0, fmt.Errorf("unit %q: %w", u.Name, err)
	}
	rate, err := sc.Price(u.Currency)
	if err != nil {
		return 0, fmt.Errorf("unit %q: %w", u.Name, err)
	}
	return rate, nil
}

func (e *Engine) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}
