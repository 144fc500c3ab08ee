package models

import "time"

type ScenarioResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Active   bool    `json:"active"`
	ETHPrice float64 `json:"eth_price"`
	BTCPrice float64 `json:"btc_price"`
}

type UnitResponse struct {
	ID                  string  `json:"id"`
	ScenarioID          string  `json:"scenario_id"`
	Name                string  `json:"name"`
	Currency            string  `json:"currency"`
	LaunchDate          string  `json:"launch_date,omitempty"` // YYYY-MM
	InitialBalance      float64 `json:"initial_balance"`
	MonthlyGrowthRate   float64 `json:"monthly_growth_rate"`
	ManagementFeeTotal  float64 `json:"management_fee_total"`
	ManagementFeeShare  float64 `json:"management_fee_share"`
	PerformanceFeeTotal float64 `json:"performance_fee_total"`
	PerformanceFeeShare float64 `json:"performance_fee_share"`
	YieldAPR            float64 `json:"yield_apr"`
	NetReturnMargin     float64 `json:"net_return_margin"`
	EmployeeCapital     float64 `json:"employee_capital"`
	// Derived platform rates.
	ManagementFeeRate  float64 `json:"management_fee_rate"`
	PerformanceFeeRate float64 `json:"performance_fee_rate"`
}

type SnapshotResponse struct {
	ID         string         `json:"id"`
	ScenarioID string         `json:"scenario_id"`
	CreatedAt  time.Time      `json:"created_at"`
	ETHPrice   float64        `json:"eth_price"`
	BTCPrice   float64        `json:"btc_price"`
	Units      []UnitResponse `json:"units,omitempty"`
}

type AssumptionsResponse struct {
	Updated int `json:"updated"`
}

// ProjectionResponse carries every aggregate view of one projection run.
type ProjectionResponse struct {
	Scenario   ScenarioResponse `json:"scenario"`
	Settings   SettingsResponse `json:"settings"`
	Summary    Summary          `json:"summary"`
	Years      []YearRow        `json:"years"`
	Fees       []PeriodFeeRow   `json:"fees"`
	FeePct     []FeePctRow      `json:"fee_pct"`
	ByCurrency []CurrencyRow    `json:"by_currency"`
	ByUnit     []UnitPeriodRow  `json:"by_unit"`
	Rows       []ProjectionRow  `json:"rows,omitempty"`
}

// SettingsResponse echoes the window a projection actually ran over.
type SettingsResponse struct {
	Start  string `json:"start"`
	Months int    `json:"months"`
}

type Summary struct {
	Periods           int     `json:"periods"`
	BalanceUSD        float64 `json:"balance_usd"`
	MonthlyFeeUSD     float64 `json:"monthly_fee_usd"`
	AnnualFeeUSD      float64 `json:"annual_fee_usd"`
	AvgFeePct         float64 `json:"avg_fee_pct"`
	CumulativeFeesUSD float64 `json:"cumulative_fees_usd"`
}

type YearRow struct {
	Year                int     `json:"year"`
	EndOfYearBalanceUSD float64 `json:"end_of_year_balance_usd"`
	ManagementFeesUSD   float64 `json:"management_fees_usd"`
	PerformanceFeesUSD  float64 `json:"performance_fees_usd"`
	TotalFeesUSD        float64 `json:"total_fees_usd"`
	AvgFeePct           float64 `json:"avg_fee_pct"`
}

type PeriodFeeRow struct {
	Date              string  `json:"date"`
	ManagementFee     float64 `json:"management_fee"`
	ManagementFeeUSD  float64 `json:"management_fee_usd"`
	PerformanceFeeUSD float64 `json:"performance_fee_usd"`
	TotalFeeUSD       float64 `json:"total_fee_usd"`
	BalanceUSD        float64 `json:"balance_usd"`
}

type FeePctRow struct {
	Date             string  `json:"date"`
	FeePctAnnualized float64 `json:"fee_pct_annualized"`
	TotalFeeUSD      float64 `json:"total_fee_usd"`
	BalanceUSD       float64 `json:"balance_usd"`
}

type CurrencyRow struct {
	Date       string  `json:"date"`
	Currency   string  `json:"currency"`
	Balance    float64 `json:"balance"`
	BalanceUSD float64 `json:"balance_usd"`
}

type UnitPeriodRow struct {
	Date        string  `json:"date"`
	Unit        string  `json:"unit"`
	Currency    string  `json:"currency"`
	BalanceUSD  float64 `json:"balance_usd"`
	TotalFeeUSD float64 `json:"total_fee_usd"`
}

// ProjectionRow is one unit-month of the raw dataset.
type ProjectionRow struct {
	Date              string  `json:"date"`
	Unit              string  `json:"unit"`
	Currency          string  `json:"currency"`
	Balance           float64 `json:"balance"`
	BalanceUSD        float64 `json:"balance_usd"`
	ManagementFee     float64 `json:"management_fee"`
	ManagementFeeUSD  float64 `json:"management_fee_usd"`
	PerformanceFee    float64 `json:"performance_fee"`
	PerformanceFeeUSD float64 `json:"performance_fee_usd"`
	TotalFeeUSD       float64 `json:"total_fee_usd"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation. Error is set
// instead of the figures when the variation could not be projected.
type ComparisonResult struct {
	Name    string       `json:"name"`
	Summary *Summary     `json:"summary,omitempty"`
	Years   []YearRow    `json:"years,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type SweepResponse struct {
	Parameter string       `json:"parameter"`
	Points    []SweepPoint `json:"points"`
}

type SweepPoint struct {
	Value             float64 `json:"value"`
	TotalFeesUSD      float64 `json:"total_fees_usd"`
	FinalBalanceUSD   float64 `json:"final_balance_usd"`
	FinalAnnualFeeUSD float64 `json:"final_annual_fee_usd"`
	AvgFeePct         float64 `json:"avg_fee_pct"`
}

// RankResponse represents the response from ranking units
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

type Ranking struct {
	Rank              int     `json:"rank"`
	Unit              string  `json:"unit"`
	Currency          string  `json:"currency"`
	CumulativeFeesUSD float64 `json:"cumulative_fees_usd"`
	FinalBalanceUSD   float64 `json:"final_balance_usd"`
	FeeShare          float64 `json:"fee_share"`
}

type TakeRateResponse struct {
	Name               string  `json:"name,omitempty"`
	TVLUSD             float64 `json:"tvl_usd"`
	TotalAPR           float64 `json:"total_apr"`
	ManagementFeeAPR   float64 `json:"management_fee_apr"`
	PerformanceFeeAPR  float64 `json:"performance_fee_apr"`
	LPAPR              float64 `json:"lp_apr"`
	ManagementRevenue  float64 `json:"management_revenue"`
	PerformanceRevenue float64 `json:"performance_revenue"`
	TotalRevenue       float64 `json:"total_revenue"`
	DAORevenue         float64 `json:"dao_revenue"`
	OperatorRevenue    float64 `json:"operator_revenue"`
	DAOTakeRate        float64 `json:"dao_take_rate"`
	OperatorTakeRate   float64 `json:"operator_take_rate"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
