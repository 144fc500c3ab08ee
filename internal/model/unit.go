package model

import (
	"math"
	"strings"
	"time"
)

// Unit is one revenue-generating strategy (a "machine").
// Units:
// - InitialBalance: native currency
// - MonthlyGrowthRate: fraction of InitialBalance added every month
// - fee totals, shares, YieldAPR, NetReturnMargin, EmployeeCapital: fractions 0..1
type Unit struct {
	ID         string
	ScenarioID string

	Name     string
	Currency Currency
	// LaunchDate is nil when the unit is live from the first projected month.
	LaunchDate *time.Time

	InitialBalance    float64
	MonthlyGrowthRate float64

	ManagementFeeTotal  float64
	ManagementFeeShare  float64
	PerformanceFeeTotal float64
	PerformanceFeeShare float64

	YieldAPR        float64
	NetReturnMargin float64
	EmployeeCapital float64
}

// ManagementFeeRate is the platform's annual management rate.
func (u Unit) ManagementFeeRate() float64 {
	return u.ManagementFeeTotal * u.ManagementFeeShare
}

// PerformanceFeeRate is the platform's cut of yield.
func (u Unit) PerformanceFeeRate() float64 {
	return u.PerformanceFeeTotal * u.PerformanceFeeShare
}

// LaunchMonth returns the normalized launch month, if any.
func (u Unit) LaunchMonth() (time.Time, bool) {
	if u.LaunchDate == nil {
		return time.Time{}, false
	}
	return MonthStart(*u.LaunchDate), true
}

// Clone returns a copy that shares no memory with u.
func (u Unit) Clone() Unit {
	out := u
	if u.LaunchDate != nil {
		d := *u.LaunchDate
		out.LaunchDate = &d
	}
	return out
}

func (u Unit) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return unitFieldError("name", "is required")
	}
	if !u.Currency.Valid() {
		return &FieldError{Kind: ErrConfiguration, Field: "currency", Reason: "unknown currency " + string(u.Currency)}
	}
	if !finite(u.InitialBalance) || u.InitialBalance < 0 {
		return unitFieldError("initial_balance", "must be >= 0")
	}
	rates := []struct {
		field string
		v     float64
	}{
		{"monthly_growth_rate", u.MonthlyGrowthRate},
		{"management_fee_total", u.ManagementFeeTotal},
		{"management_fee_share", u.ManagementFeeShare},
		{"performance_fee_total", u.PerformanceFeeTotal},
		{"performance_fee_share", u.PerformanceFeeShare},
		{"yield_apr", u.YieldAPR},
		{"net_return_margin", u.NetReturnMargin},
		{"employee_capital", u.EmployeeCapital},
	}
	for _, r := range rates {
		if !finite(r.v) || r.v < 0 || r.v > 1 {
			return unitFieldError(r.field, "must be in [0, 1]")
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
