package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"revenue-model/internal/aggregate"
	"revenue-model/internal/analysis"
	"revenue-model/internal/model"
	"revenue-model/internal/projection"
	"revenue-model/internal/store"

	"go.uber.org/zap"
)

// MaxClones caps a single CloneUnit call.
const MaxClones = 20

// Service runs commands and queries against a Repository and feeds the
// projection engine. Handlers and the CLI talk to this, never to the store.
type Service struct {
	repo   store.Repository
	engine *projection.Engine
	log    *zap.Logger
}

func New(repo store.Repository, engine *projection.Engine, log *zap.Logger) *Service {
	if engine == nil {
		engine = projection.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, engine: engine, log: log}
}

func (s *Service) Engine() *projection.Engine { return s.engine }

func (s *Service) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	return s.repo.ListScenarios(ctx)
}

// ActiveScenarioID may stand in for the active scenario's id.
const ActiveScenarioID = "active"

func (s *Service) GetScenario(ctx context.Context, scenarioID string) (model.Scenario, error) {
	if scenarioID == ActiveScenarioID {
		return s.ActiveScenario(ctx)
	}
	return s.repo.GetScenario(ctx, scenarioID)
}

// ActiveScenario returns the active scenario, or the first one if none is
// flagged.
func (s *Service) ActiveScenario(ctx context.Context) (model.Scenario, error) {
	return store.ActiveOrFirst(ctx, s.repo)
}

func (s *Service) CreateScenario(ctx context.Context, sc model.Scenario) (model.Scenario, error) {
	sc.Name = strings.TrimSpace(sc.Name)
	created, err := s.repo.CreateScenario(ctx, sc)
	if err != nil {
		return model.Scenario{}, err
	}
	s.log.Info("scenario created",
		zap.String("scenario_id", created.ID),
		zap.String("name", created.Name),
		zap.Bool("active", created.Active),
	)
	return created, nil
}

func (s *Service) UpdatePrices(ctx context.Context, scenarioID string, eth, btc float64) (model.Scenario, error) {
	sc, err := s.repo.UpdateScenarioPrices(ctx, scenarioID, eth, btc)
	if err != nil {
		return model.Scenario{}, err
	}
	s.log.Info("prices updated",
		zap.String("scenario_id", scenarioID),
		zap.Float64("eth_price", eth),
		zap.Float64("btc_price", btc),
	)
	return sc, nil
}

func (s *Service) ListUnits(ctx context.Context, scenarioID string) ([]model.Unit, error) {
	return s.repo.ListUnits(ctx, scenarioID)
}

func (s *Service) GetUnit(ctx context.Context, unitID string) (model.Unit, error) {
	return s.repo.GetUnit(ctx, unitID)
}

func (s *Service) CreateUnit(ctx context.Context, scenarioID string, u model.Unit) (model.Unit, error) {
	u.ScenarioID = scenarioID
	u.Name = strings.TrimSpace(u.Name)
	normalizeLaunch(&u)
	if err := u.Validate(); err != nil {
		return model.Unit{}, err
	}
	created, err := s.repo.CreateUnit(ctx, u)
	if err != nil {
		return model.Unit{}, err
	}
	s.log.Info("unit created",
		zap.String("scenario_id", scenarioID),
		zap.String("unit_id", created.ID),
		zap.String("name", created.Name),
		zap.String("currency", string(created.Currency)),
	)
	return created, nil
}

func (s *Service) UpdateUnit(ctx context.Context, u model.Unit) (model.Unit, error) {
	u.Name = strings.TrimSpace(u.Name)
	normalizeLaunch(&u)
	if err := u.Validate(); err != nil {
		return model.Unit{}, err
	}
	updated, err := s.repo.UpdateUnit(ctx, u)
	if err != nil {
		return model.Unit{}, err
	}
	s.log.Info("unit updated",
		zap.String("unit_id", updated.ID),
		zap.String("name", updated.Name),
	)
	return updated, nil
}

func (s *Service) DeleteUnit(ctx context.Context, unitID string) error {
	if err := s.repo.DeleteUnit(ctx, unitID); err != nil {
		return err
	}
	s.log.Info("unit deleted", zap.String("unit_id", unitID))
	return nil
}

// CloneUnit adds n copies of a unit to its scenario, named "<name> (Clone k)"
// with k counting up from the first free number.
func (s *Service) CloneUnit(ctx context.Context, unitID string, n int) ([]model.Unit, error) {
	if n < 1 || n > MaxClones {
		return nil, &model.FieldError{Kind: model.ErrInvalidRequest, Field: "count", Reason: fmt.Sprintf("must be in [1, %d]", MaxClones)}
	}
	src, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	siblings, err := s.repo.ListUnits(ctx, src.ScenarioID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(siblings))
	for _, u := range siblings {
		taken[u.Name] = true
	}

	out := make([]model.Unit, 0, n)
	k := 1
	for len(out) < n {
		name := fmt.Sprintf("%s (Clone %d)", src.Name, k)
		k++
		if taken[name] {
			continue
		}
		clone := src.Clone()
		clone.ID = ""
		clone.Name = name
		created, err := s.repo.CreateUnit(ctx, clone)
		if err != nil {
			return out, err
		}
		taken[name] = true
		out = append(out, created)
	}
	s.log.Info("unit cloned",
		zap.String("unit_id", unitID),
		zap.Int("count", n),
	)
	return out, nil
}

// Assumptions are scenario-wide overrides applied to every unit at once.
// A currency missing from YieldByCurrency keeps its units' yields; a nil
// MonthlyGrowth keeps every growth rate.
type Assumptions struct {
	YieldByCurrency map[model.Currency]float64
	MonthlyGrowth   *float64
}

// DefaultAssumptions are the starting values offered for a new scenario.
func DefaultAssumptions() Assumptions {
	growth := 0.10
	return Assumptions{
		YieldByCurrency: map[model.Currency]float64{
			model.ETH: 0.05,
			model.USD: 0.08,
			model.BTC: 0.03,
		},
		MonthlyGrowth: &growth,
	}
}

func (a Assumptions) Validate() error {
	for c, v := range a.YieldByCurrency {
		if !c.Valid() {
			return &model.FieldError{Kind: model.ErrConfiguration, Field: "yield_by_currency", Reason: "unknown currency " + string(c)}
		}
		if !validRate(v) {
			return &model.FieldError{Kind: model.ErrInvalidRequest, Field: "yield_by_currency." + string(c), Reason: "must be in [0, 1]"}
		}
	}
	if a.MonthlyGrowth != nil && !validRate(*a.MonthlyGrowth) {
		return &model.FieldError{Kind: model.ErrInvalidRequest, Field: "monthly_growth", Reason: "must be in [0, 1]"}
	}
	return nil
}

// ApplyAssumptions rewrites yield and growth on all units of a scenario in
// one repository write and returns how many units it touched.
func (s *Service) ApplyAssumptions(ctx context.Context, scenarioID string, a Assumptions) (int, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	units, err := s.repo.ListUnits(ctx, scenarioID)
	if err != nil {
		return 0, err
	}
	for i := range units {
		if y, ok := a.YieldByCurrency[units[i].Currency]; ok {
			units[i].YieldAPR = y
		}
		if a.MonthlyGrowth != nil {
			units[i].MonthlyGrowthRate = *a.MonthlyGrowth
		}
	}
	if err := s.repo.UpdateUnits(ctx, scenarioID, units); err != nil {
		return 0, err
	}
	s.log.Info("assumptions applied",
		zap.String("scenario_id", scenarioID),
		zap.Int("units", len(units)),
	)
	return len(units), nil
}

// SaveDefault snapshots the scenario's current prices and units.
func (s *Service) SaveDefault(ctx context.Context, scenarioID string) (store.Snapshot, error) {
	snap, err := s.repo.SaveSnapshot(ctx, scenarioID)
	if err != nil {
		return store.Snapshot{}, err
	}
	s.log.Info("snapshot saved",
		zap.String("scenario_id", scenarioID),
		zap.String("snapshot_id", snap.ID),
		zap.Int("units", len(snap.Units)),
	)
	return snap, nil
}

// ResetToDefault restores the most recent snapshot of the scenario.
func (s *Service) ResetToDefault(ctx context.Context, scenarioID string) (model.Scenario, error) {
	snaps, err := s.repo.ListSnapshots(ctx, scenarioID)
	if err != nil {
		return model.Scenario{}, err
	}
	if len(snaps) == 0 {
		return model.Scenario{}, fmt.Errorf("no saved default for scenario %q: %w", scenarioID, model.ErrNotFound)
	}
	return s.RestoreSnapshot(ctx, snaps[0].ID)
}

func (s *Service) ListSnapshots(ctx context.Context, scenarioID string) ([]store.Snapshot, error) {
	return s.repo.ListSnapshots(ctx, scenarioID)
}

func (s *Service) RestoreSnapshot(ctx context.Context, snapshotID string) (model.Scenario, error) {
	sc, err := s.repo.RestoreSnapshot(ctx, snapshotID)
	if err != nil {
		return model.Scenario{}, err
	}
	s.log.Info("snapshot restored",
		zap.String("scenario_id", sc.ID),
		zap.String("snapshot_id", snapshotID),
	)
	return sc, nil
}

// Project runs the engine over every unit of the scenario and builds all
// aggregate views.
func (s *Service) Project(ctx context.Context, scenarioID string, settings projection.Settings) (*aggregate.Report, error) {
	sc, units, err := s.load(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return s.ProjectUnits(units, sc, settings)
}

// ProjectUnits projects an explicit unit list without touching the store.
func (s *Service) ProjectUnits(units []model.Unit, sc model.Scenario, settings projection.Settings) (*aggregate.Report, error) {
	rows, err := s.engine.ProjectAll(units, sc, settings)
	if err != nil {
		return nil, err
	}
	rep, err := aggregate.Build(rows)
	if err != nil {
		return nil, err
	}
	s.log.Debug("projection run",
		zap.String("scenario", sc.DisplayName()),
		zap.Int("units", len(units)),
		zap.Int("months", settings.Months),
		zap.Int("rows", len(rows)),
	)
	return rep, nil
}

// Compare projects the scenario's units under each variation. Variations
// without units use the scenario's, and a price left at zero takes the
// stored scenario's price.
func (s *Service) Compare(ctx context.Context, scenarioID string, variations []analysis.Variation, settings projection.Settings) ([]analysis.ComparisonResult, error) {
	sc, units, err := s.load(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	resolved := make([]analysis.Variation, len(variations))
	for i, v := range variations {
		v.Scenario = inheritPrices(sc, v.Scenario)
		resolved[i] = v
	}
	return analysis.Compare(s.engine, units, resolved, settings)
}

func inheritPrices(base, v model.Scenario) model.Scenario {
	if v.Name == "" {
		v.Name = base.Name
	}
	if v.ETHPrice == 0 {
		v.ETHPrice = base.ETHPrice
	}
	if v.BTCPrice == 0 {
		v.BTCPrice = base.BTCPrice
	}
	return v
}

func (s *Service) Sweep(ctx context.Context, scenarioID string, settings projection.Settings, param analysis.Parameter, values []float64) ([]analysis.SweepPoint, error) {
	sc, units, err := s.load(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return analysis.Sweep(s.engine, units, sc, settings, param, values)
}

func (s *Service) Rank(ctx context.Context, scenarioID string, settings projection.Settings) ([]analysis.UnitRanking, error) {
	rep, err := s.Project(ctx, scenarioID, settings)
	if err != nil {
		return nil, err
	}
	return analysis.RankUnits(rep.Rows), nil
}

func (s *Service) load(ctx context.Context, scenarioID string) (model.Scenario, []model.Unit, error) {
	sc, err := s.GetScenario(ctx, scenarioID)
	if err != nil {
		return model.Scenario{}, nil, err
	}
	units, err := s.repo.ListUnits(ctx, sc.ID)
	if err != nil {
		return model.Scenario{}, nil, err
	}
	return sc, units, nil
}

// normalizeLaunch stores launch dates as the first of their month.
func normalizeLaunch(u *model.Unit) {
	if m, ok := u.LaunchMonth(); ok {
		u.LaunchDate = &m
	}
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 1
}
