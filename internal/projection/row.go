package projection

import (
	"time"

	"revenue-model/internal/model"
)

// Row is one unit's figures for one month.
// Balance is observed at the start of the month, before that month's growth.
type Row struct {
	Date     time.Time
	Unit     string
	Currency model.Currency

	Balance    float64
	BalanceUSD float64

	ManagementFee    float64
	ManagementFeeUSD float64

	PerformanceFee    float64
	PerformanceFeeUSD float64

	TotalFeeUSD float64
}

// TotalFee is the native-currency sum of both fees.
func (r Row) TotalFee() float64 {
	return r.ManagementFee + r.PerformanceFee
}

// Settings fixes the projected window.
type Settings struct {
	Start  time.Time
	Months int
}

// DefaultSettings projects 36 months from January 2026.
func DefaultSettings() Settings {
	return Settings{
		Start:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		Months: 36,
	}
}

func (s Settings) Validate() error {
	if s.Months <= 0 {
		return &model.FieldError{Kind: model.ErrInvalidRequest, Field: "months", Reason: "must be > 0"}
	}
	if s.Start.IsZero() {
		return &model.FieldError{Kind: model.ErrInvalidRequest, Field: "start", Reason: "is required"}
	}
	return nil
}

// Periods lists the first day of every projected month.
func (s Settings) Periods() []time.Time {
	start := model.MonthStart(s.Start)
	out := make([]time.Time, 0, max(s.Months, 0))
	for i := 0; i < s.Months; i++ {
		out = append(out, start.AddDate(0, i, 0))
	}
	return out
}
