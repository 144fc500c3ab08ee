package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"revenue-model/internal/aggregate"
	"revenue-model/internal/analysis"
	"revenue-model/internal/config"
	"revenue-model/internal/model"
	"revenue-model/internal/projection"
	"revenue-model/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loaded is a plan resolved into model values.
type loaded struct {
	plan     *config.Plan
	scenario model.Scenario
	units    []model.Unit
	settings projection.Settings
}

func loadPlan(path string) (*loaded, error) {
	var (
		p   *config.Plan
		err error
	)
	if path == "" {
		p = config.Default()
	} else if p, err = config.Load(path); err != nil {
		return nil, err
	}
	units, err := p.ModelUnits()
	if err != nil {
		return nil, err
	}
	settings, err := p.Settings()
	if err != nil {
		return nil, err
	}
	log.Debug("plan loaded", zap.String("path", path), zap.Int("units", len(units)))
	return &loaded{plan: p, scenario: p.ToScenario(), units: units, settings: settings}, nil
}

func project(l *loaded) (*aggregate.Report, error) {
	rows, err := projection.New().ProjectAll(l.units, l.scenario, l.settings)
	if err != nil {
		return nil, err
	}
	return aggregate.Build(rows)
}

var (
	planPath string
	outPath  string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a projection and print yearly totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadPlan(planPath)
		if err != nil {
			return err
		}
		rep, err := project(l)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s: %d units, %d months from %s\n\n",
			l.scenario.Name, len(l.units), l.settings.Months, model.FormatMonth(l.settings.Start))
		report.WriteYears(w, rep.Years)
		fmt.Fprintln(w)
		report.WriteSummary(w, rep.Summary)

		if outPath != "" {
			if err := projection.WriteCSVFile(outPath, rep.Rows); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nWrote %d rows to %s\n", len(rep.Rows), outPath)
		}
		return nil
	},
}

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List the units of a plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadPlan(planPath)
		if err != nil {
			return err
		}
		report.WriteUnits(cmd.OutOrStdout(), l.units)
		return nil
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank units by cumulative fees",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadPlan(planPath)
		if err != nil {
			return err
		}
		rep, err := project(l)
		if err != nil {
			return err
		}
		report.WriteRanking(cmd.OutOrStdout(), analysis.RankUnits(rep.Rows))
		return nil
	},
}

var comparePlans []string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare several plans over the first plan's window",
	Example: `  revenue compare --plan examples/plans/base.yaml --plan examples/plans/bull.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(comparePlans) < 2 {
			return fmt.Errorf("compare needs at least two --plan flags")
		}
		var (
			base       *loaded
			variations []analysis.Variation
		)
		for _, path := range comparePlans {
			l, err := loadPlan(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if base == nil {
				base = l
			}
			variations = append(variations, analysis.Variation{
				Name:     l.scenario.Name,
				Scenario: l.scenario,
				Units:    l.units,
			})
		}
		results, err := analysis.Compare(projection.New(), base.units, variations, base.settings)
		if err != nil {
			return err
		}
		report.WriteComparison(cmd.OutOrStdout(), results)
		return nil
	},
}

var (
	sweepParam  string
	sweepValues string
)

var sweepCmd = &cobra.Command{
	Use:     "sweep",
	Short:   "Re-run a plan once per value of one parameter",
	Example: `  revenue sweep --param yield_apr --values 0.04,0.06,0.08`,
	RunE: func(cmd *cobra.Command, args []string) error {
		param, err := analysis.ParseParameter(sweepParam)
		if err != nil {
			return err
		}
		values, err := parseFloats(sweepValues)
		if err != nil {
			return err
		}
		l, err := loadPlan(planPath)
		if err != nil {
			return err
		}
		points, err := analysis.Sweep(projection.New(), l.units, l.scenario, l.settings, param, values)
		if err != nil {
			return err
		}
		report.WriteSweep(cmd.OutOrStdout(), param, points)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the built-in Base Case as a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err == nil {
			return fmt.Errorf("%s already exists", args[0])
		}
		if err := config.Default().Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func init() {
	for _, c := range []*cobra.Command{projectCmd, unitsCmd, rankCmd, sweepCmd} {
		c.Flags().StringVar(&planPath, "plan", "", "plan YAML (default: built-in Base Case)")
	}
	projectCmd.Flags().StringVar(&outPath, "out", "", "optional CSV path for the monthly rows")
	compareCmd.Flags().StringArrayVar(&comparePlans, "plan", nil, "plan YAML, repeat for each case")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep ("+paramNames()+")")
	sweepCmd.Flags().StringVar(&sweepValues, "values", "", "comma-separated values")
	_ = sweepCmd.MarkFlagRequired("param")
	_ = sweepCmd.MarkFlagRequired("values")

	rootCmd.AddCommand(projectCmd, unitsCmd, rankCmd, compareCmd, sweepCmd, initCmd)
}

func paramNames() string {
	names := make([]string, len(analysis.Parameters))
	for i, p := range analysis.Parameters {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
