package finance

import (
	"math"

	"calculator-engine/internal/form"
	"calculator-engine/internal/projection"
)

// SavingsInput parameterises a compound-growth savings projection.
type SavingsInput struct {
	CurrentAge           int
	Years                int
	CurrentBalance       float64
	AnnualContribution   float64
	ReturnRate           float64
	Compounding          string
	ContributionIncrease float64
	InflationRate        float64
}

// ParseSavings reads a SavingsInput. The horizon is either years or
// target_age; target_age wins when both are given.
func ParseSavings(p *form.Parser) SavingsInput {
	var in SavingsInput
	in.CurrentAge = p.Int("current_age", 0, form.Range(0, MaxAge))
	in.CurrentBalance = p.Float("current_balance", 0, form.Range(0, MaxBalance))
	in.AnnualContribution = p.Float("annual_contribution", 0, form.Range(0, MaxBalance))
	in.ReturnRate = p.RequiredFloat("return_rate", form.Range(0, MaxRate))
	in.Compounding = p.Choice("compounding", CompoundMonthly, CompoundMonthly, CompoundQuarterly, CompoundAnnually, CompoundDaily)
	in.ContributionIncrease = p.Float("contribution_increase", 0, form.Range(0, MaxRate))
	in.InflationRate = p.Float("inflation_rate", 0, form.Range(0, MaxRate))

	if p.Has("target_age") {
		target := p.Int("target_age", 0, form.Range(0, horizonAge(in.CurrentAge)))
		p.Check(target >= in.CurrentAge, "target_age", "INVALID_AGE_RANGE", "must not be before current_age")
		in.Years = target - in.CurrentAge
	} else {
		in.Years = p.RequiredInt("years", form.Range(0, projection.MaxYears))
	}
	return in
}

// Query is the shareable snapshot of the input.
func (in SavingsInput) Query() form.Values {
	return form.Values{}.
		SetInt("current_age", in.CurrentAge).
		SetInt("years", in.Years).
		SetFloat("current_balance", in.CurrentBalance).
		SetFloat("annual_contribution", in.AnnualContribution).
		SetFloat("return_rate", in.ReturnRate).
		SetString("compounding", in.Compounding).
		SetFloat("contribution_increase", in.ContributionIncrease).
		SetFloat("inflation_rate", in.InflationRate)
}

// SavingsResult summarises a savings projection.
type SavingsResult struct {
	Years                    int               `json:"years"`
	FinalBalance             float64           `json:"final_balance"`
	TotalContributions       float64           `json:"total_contributions"`
	TotalGrowth              float64           `json:"total_growth"`
	InflationAdjustedBalance float64           `json:"inflation_adjusted_balance"`
	Projection               []projection.Year `json:"projection"`
}

func CalculateSavings(in SavingsInput) SavingsResult {
	rows := projection.Project(projection.Schedule{
		StartBalance:       in.CurrentBalance,
		AnnualRate:         pct(in.ReturnRate),
		AnnualContribution: in.AnnualContribution,
		ContributionGrowth: pct(in.ContributionIncrease),
		PeriodsPerYear:     PeriodsPerYear(in.Compounding),
		Years:              in.Years,
		StartAge:           in.CurrentAge,
	})
	final := projection.Final(rows)

	return SavingsResult{
		Years:                    final.Year,
		FinalBalance:             final.Balance,
		TotalContributions:       final.TotalContributions,
		TotalGrowth:              final.Balance - in.CurrentBalance - final.TotalContributions,
		InflationAdjustedBalance: Discount(final.Balance, pct(in.InflationRate), final.Year),
		Projection:               rows,
	}
}

// Discount expresses a future amount in today's money.
func Discount(amount, rate float64, years int) float64 {
	if rate == 0 || years == 0 {
		return amount
	}
	return amount / math.Pow(1+rate, float64(years))
}
