package config

// Default returns the Base Case plan: current prices and the launched and
// planned units.
func Default() *Plan {
	return &Plan{
		Scenario: ScenarioConfig{
			Name:     "Base Case",
			ETHPrice: 3000,
			BTCPrice: 90000,
		},
		Projection: ProjectionConfig{
			Start:  "2026-01",
			Months: 36,
		},
		Units: []UnitConfig{
			vault("DETH", "ETH", "", 9300, 0.1, 0.0075, 0.4, 0.13, 0.4, 0.05),
			vault("DUSD", "USD", "", 55_000_000, 0.1, 0.01, 0.4, 0.15, 0.4, 0.08),
			vault("DBIT", "BTC", "", 200, 0.1, 0.005, 0.4, 0.1, 0.4, 0.03),
			vault("Lido", "USD", "2026-02", 400_000_000, 0, 0.0015, 0.1153846154, 0.13, 0.1153846154, 0.08),
			vault("DNEW 1", "USD", "2026-04", 55_000_000, 0.1, 0.0075, 0.4, 0.15, 0.4, 0.08),
			vault("DNEW 2", "USD", "2026-05", 55_000_000, 0.1, 0.0075, 0.4, 0.15, 0.4, 0.08),
			vault("DNEW 3", "USD", "2026-06", 55_000_000, 0.1, 0.0075, 0.4, 0.15, 0.4, 0.08),
		},
	}
}

func vault(name, currency, launch string, balance, growth, mgmt, mgmtShare, perf, perfShare, yield float64) UnitConfig {
	return UnitConfig{
		Name:                name,
		Currency:            currency,
		LaunchDate:          launch,
		InitialBalance:      balance,
		MonthlyGrowthRate:   growth,
		ManagementFeeTotal:  mgmt,
		ManagementFeeShare:  mgmtShare,
		PerformanceFeeTotal: perf,
		PerformanceFeeShare: perfShare,
		YieldAPR:            yield,
		NetReturnMargin:     0.7,
	}
}
