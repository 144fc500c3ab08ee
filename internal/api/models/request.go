package models

// ScenarioRequest is the body of POST /api/v1/scenarios.
type ScenarioRequest struct {
	Name     string  `json:"name" binding:"required"`
	ETHPrice float64 `json:"eth_price"`
	BTCPrice float64 `json:"btc_price"`
	Active   bool    `json:"active,omitempty"`
}

// PricesRequest is the body of PUT /api/v1/scenarios/:id/prices.
type PricesRequest struct {
	ETHPrice *float64 `json:"eth_price" binding:"required"`
	BTCPrice *float64 `json:"btc_price" binding:"required"`
}

// UnitRequest creates or edits a unit. Omitted fields keep their current
// value on update and take the template default on create. An empty
// launch_date clears the launch gate.
type UnitRequest struct {
	Name                *string  `json:"name,omitempty"`
	Currency            *string  `json:"currency,omitempty"`
	LaunchDate          *string  `json:"launch_date,omitempty"` // YYYY-MM or YYYY-MM-DD
	InitialBalance      *float64 `json:"initial_balance,omitempty"`
	MonthlyGrowthRate   *float64 `json:"monthly_growth_rate,omitempty"`
	ManagementFeeTotal  *float64 `json:"management_fee_total,omitempty"`
	ManagementFeeShare  *float64 `json:"management_fee_share,omitempty"`
	PerformanceFeeTotal *float64 `json:"performance_fee_total,omitempty"`
	PerformanceFeeShare *float64 `json:"performance_fee_share,omitempty"`
	YieldAPR            *float64 `json:"yield_apr,omitempty"`
	NetReturnMargin     *float64 `json:"net_return_margin,omitempty"`
	EmployeeCapital     *float64 `json:"employee_capital,omitempty"`
}

// CloneRequest is the body of POST /api/v1/units/:id/clone.
type CloneRequest struct {
	Count int `json:"count" binding:"required"`
}

// AssumptionsRequest is the body of POST /api/v1/scenarios/:id/assumptions.
// Yields are keyed by currency code.
type AssumptionsRequest struct {
	YieldByCurrency map[string]float64 `json:"yield_by_currency,omitempty"`
	MonthlyGrowth   *float64           `json:"monthly_growth,omitempty"`
}

// ProjectionQuery holds the query string of GET /scenarios/:id/projection.
type ProjectionQuery struct {
	Start       string `form:"start"`  // YYYY-MM, default 2026-01
	Months      *int   `form:"months"` // default 36; 0 is rejected
	IncludeRows bool   `form:"include_rows"`
}

// ProjectionSettings is the JSON form of the projection window. Months is
// a pointer so that an explicit 0 is rejected rather than defaulted.
type ProjectionSettings struct {
	Start  string `json:"start,omitempty"`
	Months *int   `json:"months,omitempty"`
}

// PriceScenario is an inline scenario used by stateless endpoints.
type PriceScenario struct {
	Name     string  `json:"name,omitempty"`
	ETHPrice float64 `json:"eth_price"`
	BTCPrice float64 `json:"btc_price"`
}

// ProjectionRequest is the body of POST /api/v1/projection. Nothing is
// read from or written to the store.
type ProjectionRequest struct {
	Scenario    PriceScenario      `json:"scenario"`
	Units       []UnitRequest      `json:"units"`
	Settings    ProjectionSettings `json:"settings,omitempty"`
	IncludeRows bool               `json:"include_rows,omitempty"`
}

// CompareRequest is the body of POST /api/v1/compare.
type CompareRequest struct {
	ScenarioID string             `json:"scenario_id" binding:"required"`
	Settings   ProjectionSettings `json:"settings,omitempty"`
	Variations []VariationRequest `json:"variations" binding:"required,min=1"`
}

// VariationRequest is one case in a comparison. Units, when present,
// replace the scenario's units. A price left out (or zero) keeps the
// stored scenario's price.
type VariationRequest struct {
	Name     string        `json:"name" binding:"required"`
	Scenario PriceScenario `json:"scenario"`
	Units    []UnitRequest `json:"units,omitempty"`
}

// SweepRequest is the body of POST /api/v1/sweep.
type SweepRequest struct {
	ScenarioID string             `json:"scenario_id" binding:"required"`
	Settings   ProjectionSettings `json:"settings,omitempty"`
	Parameter  string             `json:"parameter" binding:"required"`
	Values     []float64          `json:"values" binding:"required,min=1"`
}

// TakeRateRequest is the body of POST /api/v1/takerate. Rates are
// fractions. FeeSplit defaults to 60/40 in the DAO's favour.
type TakeRateRequest struct {
	Name           string           `json:"name,omitempty"`
	Balance        float64          `json:"balance"`
	Price          float64          `json:"price"`
	GrowthAPR      float64          `json:"growth_apr"`
	ManagementFee  float64          `json:"management_fee"`
	PerformanceFee float64          `json:"performance_fee"`
	FeeSplit       *FeeSplitRequest `json:"fee_split,omitempty"`
}

type FeeSplitRequest struct {
	ManagementDAO       float64 `json:"management_dao"`
	PerformanceDAO      float64 `json:"performance_dao"`
	ManagementOperator  float64 `json:"management_operator"`
	PerformanceOperator float64 `json:"performance_operator"`
}
