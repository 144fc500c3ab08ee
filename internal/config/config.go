package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"

	"gopkg.in/yaml.v3"
)

// Plan is the on-disk shape (YAML) of one projection run: a price scenario,
// the projection window and the units to project.
type Plan struct {
	// Optional: load a shared unit list from another YAML file.
	// Units listed inline overlay file units with the same name and are
	// appended otherwise.
	UnitsFile  string           `yaml:"units_file,omitempty"`
	Scenario   ScenarioConfig   `yaml:"scenario"`
	Projection ProjectionConfig `yaml:"projection"`
	Units      []UnitConfig     `yaml:"units"`
}

type ScenarioConfig struct {
	Name     string  `yaml:"name"`
	ETHPrice float64 `yaml:"eth_price"`
	BTCPrice float64 `yaml:"btc_price"`
}

type ProjectionConfig struct {
	// Start is "YYYY-MM".
	Start  string `yaml:"start"`
	Months int    `yaml:"months"`
}

type UnitConfig struct {
	Name                string  `yaml:"name"`
	Currency            string  `yaml:"currency"`
	LaunchDate          string  `yaml:"launch_date,omitempty"`
	InitialBalance      float64 `yaml:"initial_balance"`
	MonthlyGrowthRate   float64 `yaml:"monthly_growth_rate"`
	ManagementFeeTotal  float64 `yaml:"management_fee_total"`
	ManagementFeeShare  float64 `yaml:"management_fee_share"`
	PerformanceFeeTotal float64 `yaml:"performance_fee_total"`
	PerformanceFeeShare float64 `yaml:"performance_fee_share"`
	YieldAPR            float64 `yaml:"yield_apr"`
	NetReturnMargin     float64 `yaml:"net_return_margin"`
	EmployeeCapital     float64 `yaml:"employee_capital,omitempty"`
}

// Load reads, merges, defaults and validates a plan.
func Load(path string) (*Plan, error) {
	p, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadUnchecked loads and merges a plan, but does not validate it.
// Useful for printing partial plans.
func LoadUnchecked(path string) (*Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if p.UnitsFile != "" {
		unitsPath := p.UnitsFile
		if !filepath.IsAbs(unitsPath) {
			// Prefer paths relative to the plan file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), unitsPath)
			if _, err := os.Stat(cand); err == nil {
				unitsPath = cand
			}
		}
		loaded, err := loadUnitsFile(unitsPath)
		if err != nil {
			return nil, err
		}
		p.Units = MergeUnits(loaded, p.Units)
	}
	return &p, nil
}

// Save writes the plan as YAML.
func (p *Plan) Save(path string) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func (p *Plan) applyDefaults() {
	def := projection.DefaultSettings()
	if strings.TrimSpace(p.Projection.Start) == "" {
		p.Projection.Start = model.FormatMonth(def.Start)
	}
	if p.Projection.Months == 0 {
		p.Projection.Months = def.Months
	}
	if strings.TrimSpace(p.Scenario.Name) == "" {
		p.Scenario.Name = "Base Case"
	}
}

func (p *Plan) Validate() error {
	if p == nil {
		return errors.New("plan is nil")
	}
	if _, err := p.Settings(); err != nil {
		return err
	}
	if err := p.ToScenario().Validate(); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	seen := map[string]bool{}
	for i, uc := range p.Units {
		u, err := uc.ToModel()
		if err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
		if err := u.Validate(); err != nil {
			return fmt.Errorf("units[%d] %q: %w", i, u.Name, err)
		}
		if seen[u.Name] {
			return fmt.Errorf("units[%d]: %w: duplicate name %q", i, model.ErrInvalidUnit, u.Name)
		}
		seen[u.Name] = true
	}
	return nil
}

func (p *Plan) Settings() (projection.Settings, error) {
	start, err := model.ParseMonth(p.Projection.Start)
	if err != nil {
		return projection.Settings{}, fmt.Errorf("%w: projection.start: %v", model.ErrInvalidRequest, err)
	}
	s := projection.Settings{Start: start, Months: p.Projection.Months}
	if err := s.Validate(); err != nil {
		return projection.Settings{}, err
	}
	return s, nil
}

func (p *Plan) ToScenario() model.Scenario {
	return model.Scenario{
		Name:     p.Scenario.Name,
		ETHPrice: p.Scenario.ETHPrice,
		BTCPrice: p.Scenario.BTCPrice,
	}
}

// ModelUnits converts every unit, stopping at the first bad one.
func (p *Plan) ModelUnits() ([]model.Unit, error) {
	out := make([]model.Unit, 0, len(p.Units))
	for i, uc := range p.Units {
		u, err := uc.ToModel()
		if err != nil {
			return nil, fmt.Errorf("units[%d]: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}

// ToModel parses currency and launch date; range checks are left to
// model.Unit.Validate.
func (u UnitConfig) ToModel() (model.Unit, error) {
	cur, err := model.ParseCurrency(u.Currency)
	if err != nil {
		return model.Unit{}, err
	}
	out := model.Unit{
		Name:                strings.TrimSpace(u.Name),
		Currency:            cur,
		InitialBalance:      u.InitialBalance,
		MonthlyGrowthRate:   u.MonthlyGrowthRate,
		ManagementFeeTotal:  u.ManagementFeeTotal,
		ManagementFeeShare:  u.ManagementFeeShare,
		PerformanceFeeTotal: u.PerformanceFeeTotal,
		PerformanceFeeShare: u.PerformanceFeeShare,
		YieldAPR:            u.YieldAPR,
		NetReturnMargin:     u.NetReturnMargin,
		EmployeeCapital:     u.EmployeeCapital,
	}
	if strings.TrimSpace(u.LaunchDate) != "" {
		d, err := model.ParseMonth(u.LaunchDate)
		if err != nil {
			return model.Unit{}, fmt.Errorf("%w: launch_date: %v", model.ErrInvalidUnit, err)
		}
		out.LaunchDate = &d
	}
	return out, nil
}

// FromModel is the inverse of ToModel.
func FromModel(u model.Unit) UnitConfig {
	out := UnitConfig{
		Name:                u.Name,
		Currency:            string(u.Currency),
		InitialBalance:      u.InitialBalance,
		MonthlyGrowthRate:   u.MonthlyGrowthRate,
		ManagementFeeTotal:  u.ManagementFeeTotal,
		ManagementFeeShare:  u.ManagementFeeShare,
		PerformanceFeeTotal: u.PerformanceFeeTotal,
		PerformanceFeeShare: u.PerformanceFeeShare,
		YieldAPR:            u.YieldAPR,
		NetReturnMargin:     u.NetReturnMargin,
		EmployeeCapital:     u.EmployeeCapital,
	}
	if m, ok := u.LaunchMonth(); ok {
		out.LaunchDate = model.FormatMonth(m)
	}
	return out
}

type unitsFileWrapper struct {
	Units []UnitConfig `yaml:"units"`
}

func loadUnitsFile(path string) ([]UnitConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read units file: %w", err)
	}
	var w unitsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse units file %s: %w", path, err)
	}
	return w.Units, nil
}

// MergeUnits overlays overrides onto base by unit name. Overrides without a
// matching base unit are appended in order.
func MergeUnits(base, overrides []UnitConfig) []UnitConfig {
	out := make([]UnitConfig, len(base))
	copy(out, base)
	idx := map[string]int{}
	for i, u := range out {
		idx[u.Name] = i
	}
	for _, o := range overrides {
		if i, ok := idx[o.Name]; ok {
			out[i] = MergeUnit(out[i], o)
			continue
		}
		idx[o.Name] = len(out)
		out = append(out, o)
	}
	return out
}

// MergeUnit overlays non-zero fields from override onto base.
// A zero in the override therefore cannot clear a base value.
func MergeUnit(base, override UnitConfig) UnitConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Currency != "" {
		out.Currency = override.Currency
	}
	if override.LaunchDate != "" {
		out.LaunchDate = override.LaunchDate
	}
	if override.InitialBalance != 0 {
		out.InitialBalance = override.InitialBalance
	}
	if override.MonthlyGrowthRate != 0 {
		out.MonthlyGrowthRate = override.MonthlyGrowthRate
	}
	if override.ManagementFeeTotal != 0 {
		out.ManagementFeeTotal = override.ManagementFeeTotal
	}
	if override.ManagementFeeShare != 0 {
		out.ManagementFeeShare = override.ManagementFeeShare
	}
	if override.PerformanceFeeTotal != 0 {
		out.PerformanceFeeTotal = override.PerformanceFeeTotal
	}
	if override.PerformanceFeeShare != 0 {
		out.PerformanceFeeShare = override.PerformanceFeeShare
	}
	if override.YieldAPR != 0 {
		out.YieldAPR = override.YieldAPR
	}
	if override.NetReturnMargin != 0 {
		out.NetReturnMargin = override.NetReturnMargin
	}
	if override.EmployeeCapital != 0 {
		out.EmployeeCapital = override.EmployeeCapital
	}
	return out
}
