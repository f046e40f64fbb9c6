package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calculator-engine/internal/form"
	"calculator-engine/internal/projection"
)

func parseSavings(t *testing.T, v form.Values) (SavingsInput, *form.Parser) {
	t.Helper()
	p := form.NewParser(v)
	in := ParseSavings(p)
	require.NoError(t, p.Err())
	return in, p
}

func TestSavings_OneYearMonthlyExample(t *testing.T) {
	in, _ := parseSavings(t, form.Values{
		"current_balance":     "0",
		"annual_contribution": "1200",
		"return_rate":         "5",
		"years":               "1",
	})

	res := CalculateSavings(in)

	assert.InDelta(t, 1227.89, res.FinalBalance, 0.01)
	assert.Equal(t, 1200.0, res.TotalContributions)
	assert.InDelta(t, 27.89, res.TotalGrowth, 0.01)
	assert.Len(t, res.Projection, 2)
}

func TestSavings_NoGrowthWithoutRateOrContribution(t *testing.T) {
	in, _ := parseSavings(t, form.Values{"current_balance": "4321.5", "return_rate": "0", "years": "15"})
	res := CalculateSavings(in)
	assert.Equal(t, 4321.5, res.FinalBalance)
	assert.Equal(t, 0.0, res.TotalGrowth)
}

func TestSavings_TargetAge(t *testing.T) {
	in, _ := parseSavings(t, form.Values{"current_age": "35", "target_age": "65", "return_rate": "6"})
	assert.Equal(t, 30, in.Years)
	assert.Equal(t, 30, CalculateSavings(in).Years)
}

func TestSavings_TargetAgeBeforeCurrentAge(t *testing.T) {
	p := form.NewParser(form.Values{"current_age": "50", "target_age": "40", "return_rate": "6"})
	ParseSavings(p)
	require.Error(t, p.Err())
}

func TestSavings_MissingRate(t *testing.T) {
	p := form.NewParser(form.Values{"years": "10"})
	ParseSavings(p)
	require.Error(t, p.Err())
}

func TestSavings_InflationAdjusted(t *testing.T) {
	in, _ := parseSavings(t, form.Values{"current_balance": "1000", "return_rate": "0", "years": "2", "inflation_rate": "10"})
	res := CalculateSavings(in)
	assert.InDelta(t, 1000/1.21, res.InflationAdjustedBalance, 1e-9)
}

func TestSavings_QueryRoundTrip(t *testing.T) {
	in, _ := parseSavings(t, form.Values{
		"current_age":           "31",
		"years":                 "29",
		"current_balance":       "12345.678",
		"annual_contribution":   "6500.1",
		"return_rate":           "7.125",
		"compounding":           "Quarterly",
		"contribution_increase": "2.5",
		"inflation_rate":        "0.1",
	})

	again, _ := parseSavings(t, in.Query())
	assert.Equal(t, in, again)
}

func TestSavings_TargetAgeBeyondHorizonRoundTrip(t *testing.T) {
	in, p := parseSavings(t, form.Values{"current_age": "0", "target_age": "120", "return_rate": "5"})
	assert.Equal(t, projection.MaxYears, in.Years)
	require.Len(t, p.Adjustments(), 1)
	assert.Equal(t, "target_age", p.Adjustments()[0].Field)
	assert.Equal(t, 100.0, p.Adjustments()[0].To)

	again, p := parseSavings(t, in.Query())
	assert.Equal(t, in, again)
	assert.Empty(t, p.Adjustments())

	res := CalculateSavings(in)
	assert.Equal(t, projection.MaxYears, res.Years)
	assert.Equal(t, 100, projection.Final(res.Projection).Age)
}

func TestIRA_ClampsContributionToLimit(t *testing.T) {
	p := form.NewParser(form.Values{
		"current_age":         "30",
		"retirement_age":      "65",
		"annual_contribution": "9000",
		"return_rate":         "6",
	})
	in := ParseIRA(p)
	require.NoError(t, p.Err())

	assert.Equal(t, IRAContributionLimit, in.AnnualContribution)
	require.Len(t, p.Adjustments(), 1)
	assert.Equal(t, "annual_contribution", p.Adjustments()[0].Field)
}

func TestIRA_CatchUpLimit(t *testing.T) {
	assert.Equal(t, 7000.0, ContributionLimit(49))
	assert.Equal(t, 8000.0, ContributionLimit(50))
}

func TestIRA_RetirementMustFollowCurrentAge(t *testing.T) {
	p := form.NewParser(form.Values{"current_age": "60", "retirement_age": "60", "return_rate": "5"})
	ParseIRA(p)
	require.Error(t, p.Err())
}

func TestIRA_TaxComparison(t *testing.T) {
	res := CalculateIRA(IRAInput{
		CurrentAge:         30,
		RetirementAge:      31,
		AnnualContribution: 7000,
		CurrentTaxRate:     20,
		RetirementTaxRate:  25,
		FilingStatus:       FilingSingle,
	})

	assert.Equal(t, 1, res.Years)
	assert.InDelta(t, 7000, res.Traditional.FinalBalance, 1e-9)
	assert.InDelta(t, 1750, res.Traditional.TaxAtWithdrawal, 1e-9)
	assert.InDelta(t, 5250, res.Traditional.NetBalance, 1e-9)
	assert.InDelta(t, 7000, res.Roth.NetBalance, 1e-9)
	assert.InDelta(t, 1400, res.UpfrontTaxSavings, 1e-9)
	assert.InDelta(t, 350, res.RothAdvantage, 1e-9)
	assert.True(t, res.RothEligible)
}

func TestIRA_RothPhaseOut(t *testing.T) {
	assert.Equal(t, 7000.0, RothContributionLimit(7000, 100_000, FilingSingle))
	assert.Equal(t, 3500.0, RothContributionLimit(7000, 153_500, FilingSingle))
	assert.Equal(t, 200.0, RothContributionLimit(7000, 160_990, FilingSingle))
	assert.Equal(t, 0.0, RothContributionLimit(7000, 161_000, FilingSingle))
	assert.Equal(t, 7000.0, RothContributionLimit(7000, 200_000, FilingMarriedJoint))
	assert.Equal(t, 0.0, RothContributionLimit(7000, 10_000, FilingMarriedSeparate))
}

func TestIRA_IneligibleRothStillProjectsTraditional(t *testing.T) {
	res := CalculateIRA(IRAInput{
		CurrentAge:         40,
		RetirementAge:      60,
		CurrentBalance:     1000,
		AnnualContribution: 7000,
		ReturnRate:         5,
		MAGI:               500_000,
		FilingStatus:       FilingSingle,
	})
	assert.False(t, res.RothEligible)
	assert.Equal(t, 0.0, res.Roth.AnnualContribution)
	assert.Greater(t, res.Traditional.FinalBalance, res.Roth.FinalBalance)
}

func TestIRA_QueryRoundTrip(t *testing.T) {
	in := IRAInput{
		CurrentAge: 52, RetirementAge: 67, CurrentBalance: 50_000.25, AnnualContribution: 8000,
		ReturnRate: 6.5, CurrentTaxRate: 22, RetirementTaxRate: 12, MAGI: 155_000, FilingStatus: FilingMarriedJoint,
	}
	p := form.NewParser(in.Query())
	again := ParseIRA(p)
	require.NoError(t, p.Err())
	assert.Equal(t, in, again)
	assert.Empty(t, p.Adjustments())
}

func TestIRA_RetirementAgeBeyondHorizon(t *testing.T) {
	p := form.NewParser(form.Values{"current_age": "0", "retirement_age": "120", "return_rate": "5"})
	in := ParseIRA(p)
	require.NoError(t, p.Err())
	assert.Equal(t, 100, in.RetirementAge)
	require.Len(t, p.Adjustments(), 1)
	assert.Equal(t, "retirement_age", p.Adjustments()[0].Field)

	res := CalculateIRA(in)
	final := projection.Final(res.Traditional.Projection)
	assert.Equal(t, final.Year, res.Years)
	assert.Equal(t, in.RetirementAge, final.Age)

	again := form.NewParser(in.Query())
	assert.Equal(t, in, ParseIRA(again))
	assert.Empty(t, again.Adjustments())
}

func TestRMD_CurrentYear(t *testing.T) {
	res := CalculateRMD(RMDInput{Age: 75, Balance: 100_000, Years: 2})
	assert.Equal(t, 24.6, res.Divisor)
	assert.InDelta(t, 100_000/24.6, res.CurrentYearRMD, 1e-9)
	require.Len(t, res.Schedule, 2)
	assert.Equal(t, 76, res.Schedule[1].Age)
}

func TestRMD_BeforeStartAge(t *testing.T) {
	res := CalculateRMD(RMDInput{Age: 70, Balance: 100_000, ReturnRate: 0, Years: 5})
	assert.Equal(t, 0.0, res.CurrentYearRMD)
	assert.Equal(t, RMDStartAge, res.FirstRequiredAge)
	assert.Equal(t, 0.0, res.Schedule[2].Withdrawal)
	assert.InDelta(t, 100_000/26.5, res.Schedule[3].Withdrawal, 1e-9)
}

func TestRMD_DivisorAfterTableEnd(t *testing.T) {
	d, ok := UniformLifetimeDivisor(125)
	require.True(t, ok)
	assert.Equal(t, 2.0, d)
}

func TestSocialSecurity_PIA(t *testing.T) {
	assert.Equal(t, 0.0, PrimaryInsuranceAmount(0))
	assert.InDelta(t, 900, PrimaryInsuranceAmount(1000), 1e-9)
	assert.InDelta(t, 2280.9, PrimaryInsuranceAmount(5000), 1e-9)
}

func TestSocialSecurity_FullRetirementAge(t *testing.T) {
	cases := []struct {
		year          int
		years, months int
	}{
		{1935, 65, 0},
		{1940, 65, 6},
		{1950, 66, 0},
		{1957, 66, 6},
		{1960, 67, 0},
	}
	for _, tc := range cases {
		y, m := FullRetirementAge(tc.year)
		assert.Equal(t, tc.years, y, "year %d", tc.year)
		assert.Equal(t, tc.months, m, "year %d", tc.year)
	}
}

func TestSocialSecurity_ClaimFactor(t *testing.T) {
	assert.InDelta(t, 0.7, ClaimFactor(-60), 1e-12)
	assert.InDelta(t, 0.8, ClaimFactor(-36), 1e-12)
	assert.InDelta(t, 1.24, ClaimFactor(36), 1e-12)
	assert.Equal(t, 1.0, ClaimFactor(0))
}

func TestSocialSecurity_FromAnnualEarnings(t *testing.T) {
	p := form.NewParser(form.Values{"average_annual_earnings": "60000", "birth_year": "1962", "claim_age": "62"})
	in := ParseSocialSecurity(p)
	require.NoError(t, p.Err())
	assert.Equal(t, 5000.0, in.AIME)

	res := CalculateSocialSecurity(in)
	assert.Equal(t, -60, res.MonthsFromFullRetirement)
	assert.Equal(t, 1596.0, res.MonthlyBenefit)
	assert.InDelta(t, -30, res.AdjustmentPercent, 1e-9)
}
