package analysis

import (
	"fmt"

	"revenue-model/internal/aggregate"
	"revenue-model/internal/model"
	"revenue-model/internal/projection"
)

// Variation is one named case in a comparison. Units is optional; when
// empty the comparison's base units are used.
type Variation struct {
	Name     string
	Scenario model.Scenario
	Units    []model.Unit
}

type ComparisonResult struct {
	Name    string
	Years   []aggregate.YearRow
	Summary aggregate.Summary
	// Err is set when this variation could not be projected; the other
	// variations are still reported.
	Err error
}

// Compare projects every variation over the same window.
func Compare(e *projection.Engine, base []model.Unit, variations []Variation, settings projection.Settings) ([]ComparisonResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	out := make([]ComparisonResult, 0, len(variations))
	for i, v := range variations {
		name := v.Name
		if name == "" {
			name = fmt.Sprintf("variation %d", i+1)
		}
		units := v.Units
		if len(units) == 0 {
			units = base
		}

		res := ComparisonResult{Name: name}
		rep, err := run(e, units, v.Scenario, settings)
		if err != nil {
			res.Err = err
		} else {
			res.Years = rep.Years
			res.Summary = rep.Summary
		}
		out = append(out, res)
	}
	return out, nil
}

func run(e *projection.Engine, units []model.Unit, sc model.Scenario, settings projection.Settings) (*aggregate.Report, error) {
	rows, err := e.ProjectAll(units, sc, settings)
	if err != nil {
		return nil, err
	}
	return aggregate.Build(rows)
}
