// Package finance holds the savings, IRA, RMD and Social Security
// calculators. Percent inputs are whole percentages (5 means 5%).
package finance

import "calculator-engine/internal/projection"

const (
	MaxAge     = 120
	MaxBalance = 1_000_000_000_000.0
	MaxRate    = 100.0 // percent

	// IRA contribution limits (2024 tax year).
	IRAContributionLimit   = 7000.0
	IRACatchUpContribution = 1000.0
	IRACatchUpAge          = 50

	// RMDStartAge is the first age with a required minimum distribution
	// (SECURE 2.0, for anyone turning 73 after 2022).
	RMDStartAge     = 73
	DefaultRMDYears = 20

	// PIA bend points (2024 eligibility year).
	PIABendPoint1 = 1174.0
	PIABendPoint2 = 7078.0

	EarliestClaimAge = 62
	LatestClaimAge   = 70
)

const (
	CompoundMonthly   = "monthly"
	CompoundQuarterly = "quarterly"
	CompoundAnnually  = "annually"
	CompoundDaily     = "daily"
)

var compoundingPeriods = map[string]int{
	CompoundMonthly:   12,
	CompoundQuarterly: 4,
	CompoundAnnually:  1,
	CompoundDaily:     365,
}

// PeriodsPerYear maps a compounding frequency name to its period count.
func PeriodsPerYear(compounding string) int {
	if n, ok := compoundingPeriods[compounding]; ok {
		return n
	}
	return 12
}

// horizonAge is the last age a projection starting at currentAge can reach.
func horizonAge(currentAge int) float64 {
	return float64(min(MaxAge, currentAge+projection.MaxYears))
}

func pct(v float64) float64 {
	return v / 100
}
