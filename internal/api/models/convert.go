package models

import (
	"fmt"
	"strings"

	"revenue-model/internal/aggregate"
	"revenue-model/internal/analysis"
	"revenue-model/internal/model"
	"revenue-model/internal/projection"
	"revenue-model/internal/store"
)

// UnitTemplate holds the defaults a new unit starts from when the request
// leaves fields out.
func UnitTemplate() model.Unit {
	return model.Unit{
		Name:                "New Machine",
		Currency:            model.USD,
		InitialBalance:      55_000_000,
		MonthlyGrowthRate:   0.1,
		ManagementFeeTotal:  0.0075,
		ManagementFeeShare:  0.4,
		PerformanceFeeTotal: 0.15,
		PerformanceFeeShare: 0.4,
		YieldAPR:            0.08,
		NetReturnMargin:     0.7,
	}
}

// Apply overlays the fields present in r onto base. Range checks are left
// to model.Unit.Validate.
func (r UnitRequest) Apply(base model.Unit) (model.Unit, error) {
	u := base.Clone()
	if r.Name != nil {
		u.Name = strings.TrimSpace(*r.Name)
	}
	if r.Currency != nil {
		c, err := model.ParseCurrency(*r.Currency)
		if err != nil {
			return model.Unit{}, err
		}
		u.Currency = c
	}
	if r.LaunchDate != nil {
		if strings.TrimSpace(*r.LaunchDate) == "" {
			u.LaunchDate = nil
		} else {
			d, err := model.ParseMonth(*r.LaunchDate)
			if err != nil {
				return model.Unit{}, &model.FieldError{Kind: model.ErrInvalidUnit, Field: "launch_date", Reason: err.Error()}
			}
			u.LaunchDate = &d
		}
	}
	setFloat(&u.InitialBalance, r.InitialBalance)
	setFloat(&u.MonthlyGrowthRate, r.MonthlyGrowthRate)
	setFloat(&u.ManagementFeeTotal, r.ManagementFeeTotal)
	setFloat(&u.ManagementFeeShare, r.ManagementFeeShare)
	setFloat(&u.PerformanceFeeTotal, r.PerformanceFeeTotal)
	setFloat(&u.PerformanceFeeShare, r.PerformanceFeeShare)
	setFloat(&u.YieldAPR, r.YieldAPR)
	setFloat(&u.NetReturnMargin, r.NetReturnMargin)
	setFloat(&u.EmployeeCapital, r.EmployeeCapital)
	return u, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// ToUnits builds units for stateless requests. Each must be valid.
func ToUnits(reqs []UnitRequest) ([]model.Unit, error) {
	out := make([]model.Unit, 0, len(reqs))
	for i, r := range reqs {
		u, err := r.Apply(UnitTemplate())
		if err != nil {
			return nil, fmt.Errorf("units[%d]: %w", i, err)
		}
		if r.Name == nil {
			u.Name = fmt.Sprintf("%s %d", u.Name, i+1)
		}
		out = append(out, u)
	}
	return out, nil
}

// ToSettings fills omitted fields from projection.DefaultSettings.
func (s ProjectionSettings) ToSettings() (projection.Settings, error) {
	out := projection.DefaultSettings()
	if strings.TrimSpace(s.Start) != "" {
		start, err := model.ParseMonth(s.Start)
		if err != nil {
			return projection.Settings{}, &model.FieldError{Kind: model.ErrInvalidRequest, Field: "start", Reason: err.Error()}
		}
		out.Start = start
	}
	if s.Months != nil {
		out.Months = *s.Months
	}
	if err := out.Validate(); err != nil {
		return projection.Settings{}, err
	}
	return out, nil
}

func (q ProjectionQuery) ToSettings() (projection.Settings, error) {
	return ProjectionSettings{Start: q.Start, Months: q.Months}.ToSettings()
}

func (p PriceScenario) ToScenario() model.Scenario {
	return model.Scenario{Name: p.Name, ETHPrice: p.ETHPrice, BTCPrice: p.BTCPrice}
}

func FromSettings(s projection.Settings) SettingsResponse {
	return SettingsResponse{Start: model.FormatMonth(s.Start), Months: s.Months}
}

func FromScenario(sc model.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:       sc.ID,
		Name:     sc.Name,
		Active:   sc.Active,
		ETHPrice: sc.ETHPrice,
		BTCPrice: sc.BTCPrice,
	}
}

func FromScenarios(scs []model.Scenario) []ScenarioResponse {
	out := make([]ScenarioResponse, 0, len(scs))
	for _, sc := range scs {
		out = append(out, FromScenario(sc))
	}
	return out
}

func FromUnit(u model.Unit) UnitResponse {
	out := UnitResponse{
		ID:                  u.ID,
		ScenarioID:          u.ScenarioID,
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
		ManagementFeeRate:   u.ManagementFeeRate(),
		PerformanceFeeRate:  u.PerformanceFeeRate(),
	}
	if m, ok := u.LaunchMonth(); ok {
		out.LaunchDate = model.FormatMonth(m)
	}
	return out
}

func FromUnits(units []model.Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, FromUnit(u))
	}
	return out
}

func FromSnapshot(s store.Snapshot, withUnits bool) SnapshotResponse {
	out := SnapshotResponse{
		ID:         s.ID,
		ScenarioID: s.ScenarioID,
		CreatedAt:  s.CreatedAt,
		ETHPrice:   s.ETHPrice,
		BTCPrice:   s.BTCPrice,
	}
	if withUnits {
		out.Units = FromUnits(s.Units)
	}
	return out
}

func FromSummary(s aggregate.Summary) Summary {
	return Summary{
		Periods:           s.Periods,
		BalanceUSD:        s.BalanceUSD,
		MonthlyFeeUSD:     s.MonthlyFeeUSD,
		AnnualFeeUSD:      s.AnnualFeeUSD,
		AvgFeePct:         s.AvgFeePct,
		CumulativeFeesUSD: s.CumulativeFeesUSD,
	}
}

func FromYears(years []aggregate.YearRow) []YearRow {
	out := make([]YearRow, 0, len(years))
	for _, y := range years {
		out = append(out, YearRow{
			Year:                y.Year,
			EndOfYearBalanceUSD: y.EndOfYearBalanceUSD,
			ManagementFeesUSD:   y.ManagementFeesUSD,
			PerformanceFeesUSD:  y.PerformanceFeesUSD,
			TotalFeesUSD:        y.TotalFeesUSD,
			AvgFeePct:           y.AvgFeePct,
		})
	}
	return out
}

// FromReport converts a report. Raw rows are only included on request
// since they dominate the payload.
func FromReport(sc model.Scenario, settings projection.Settings, rep *aggregate.Report, includeRows bool) ProjectionResponse {
	out := ProjectionResponse{
		Scenario:   FromScenario(sc),
		Settings:   FromSettings(settings),
		Summary:    FromSummary(rep.Summary),
		Years:      FromYears(rep.Years),
		Fees:       make([]PeriodFeeRow, 0, len(rep.Fees)),
		FeePct:     make([]FeePctRow, 0, len(rep.FeePct)),
		ByCurrency: make([]CurrencyRow, 0, len(rep.ByCurrency)),
		ByUnit:     make([]UnitPeriodRow, 0, len(rep.ByUnit)),
	}
	for _, f := range rep.Fees {
		out.Fees = append(out.Fees, PeriodFeeRow{
			Date:              model.FormatMonth(f.Date),
			ManagementFee:     f.ManagementFee,
			ManagementFeeUSD:  f.ManagementFeeUSD,
			PerformanceFeeUSD: f.PerformanceFeeUSD,
			TotalFeeUSD:       f.TotalFeeUSD,
			BalanceUSD:        f.BalanceUSD,
		})
	}
	for _, f := range rep.FeePct {
		out.FeePct = append(out.FeePct, FeePctRow{
			Date:             model.FormatMonth(f.Date),
			FeePctAnnualized: f.FeePctAnnualized,
			TotalFeeUSD:      f.TotalFeeUSD,
			BalanceUSD:       f.BalanceUSD,
		})
	}
	for _, c := range rep.ByCurrency {
		out.ByCurrency = append(out.ByCurrency, CurrencyRow{
			Date:       model.FormatMonth(c.Date),
			Currency:   string(c.Currency),
			Balance:    c.Balance,
			BalanceUSD: c.BalanceUSD,
		})
	}
	for _, u := range rep.ByUnit {
		out.ByUnit = append(out.ByUnit, UnitPeriodRow{
			Date:        model.FormatMonth(u.Date),
			Unit:        u.Unit,
			Currency:    string(u.Currency),
			BalanceUSD:  u.BalanceUSD,
			TotalFeeUSD: u.TotalFeeUSD,
		})
	}
	if includeRows {
		out.Rows = make([]ProjectionRow, 0, len(rep.Rows))
		for _, r := range rep.Rows {
			out.Rows = append(out.Rows, FromRow(r))
		}
	}
	return out
}

func FromRow(r projection.Row) ProjectionRow {
	return ProjectionRow{
		Date:              model.FormatMonth(r.Date),
		Unit:              r.Unit,
		Currency:          string(r.Currency),
		Balance:           r.Balance,
		BalanceUSD:        r.BalanceUSD,
		ManagementFee:     r.ManagementFee,
		ManagementFeeUSD:  r.ManagementFeeUSD,
		PerformanceFee:    r.PerformanceFee,
		PerformanceFeeUSD: r.PerformanceFeeUSD,
		TotalFeeUSD:       r.TotalFeeUSD,
	}
}

func FromSweep(param analysis.Parameter, points []analysis.SweepPoint) SweepResponse {
	out := SweepResponse{Parameter: string(param), Points: make([]SweepPoint, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, SweepPoint{
			Value:             p.Value,
			TotalFeesUSD:      p.TotalFeesUSD,
			FinalBalanceUSD:   p.FinalBalanceUSD,
			FinalAnnualFeeUSD: p.FinalAnnualFeeUSD,
			AvgFeePct:         p.AvgFeePct,
		})
	}
	return out
}

func FromRankings(ranks []analysis.UnitRanking) RankResponse {
	out := RankResponse{Rankings: make([]Ranking, 0, len(ranks))}
	for i, r := range ranks {
		out.Rankings = append(out.Rankings, Ranking{
			Rank:              i + 1,
			Unit:              r.Unit,
			Currency:          string(r.Currency),
			CumulativeFeesUSD: r.CumulativeFeesUSD,
			FinalBalanceUSD:   r.FinalBalanceUSD,
			FeeShare:          r.FeeShare,
		})
	}
	return out
}

func FromTakeRate(tr analysis.TakeRate) TakeRateResponse {
	return TakeRateResponse{
		Name:               tr.Name,
		TVLUSD:             tr.TVLUSD,
		TotalAPR:           tr.TotalAPR,
		ManagementFeeAPR:   tr.ManagementFeeAPR,
		PerformanceFeeAPR:  tr.PerformanceFeeAPR,
		LPAPR:              tr.LPAPR,
		ManagementRevenue:  tr.ManagementRevenue,
		PerformanceRevenue: tr.PerformanceRevenue,
		TotalRevenue:       tr.TotalRevenue,
		DAORevenue:         tr.DAORevenue,
		OperatorRevenue:    tr.OperatorRevenue,
		DAOTakeRate:        tr.DAOTakeRate,
		OperatorTakeRate:   tr.OperatorTakeRate,
	}
}
