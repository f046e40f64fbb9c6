package finance

import (
	"math"

	"calculator-engine/internal/form"
	"calculator-engine/internal/projection"
)

const (
	FilingSingle          = "single"
	FilingMarriedJoint    = "married_joint"
	FilingMarriedSeparate = "married_separate"
)

// rothPhaseOut holds the MAGI range over which the Roth contribution limit
// shrinks to zero (2024).
var rothPhaseOut = map[string][2]float64{
	FilingSingle:          {146_000, 161_000},
	FilingMarriedJoint:    {230_000, 240_000},
	FilingMarriedSeparate: {0, 10_000},
}

// IRAInput compares a traditional and a Roth IRA funded identically.
type IRAInput struct {
	CurrentAge         int
	RetirementAge      int
	CurrentBalance     float64
	AnnualContribution float64
	ReturnRate         float64
	CurrentTaxRate     float64
	RetirementTaxRate  float64
	MAGI               float64
	FilingStatus       string
}

func ParseIRA(p *form.Parser) IRAInput {
	var in IRAInput
	in.CurrentAge = p.RequiredInt("current_age", form.Range(0, MaxAge))
	in.RetirementAge = p.RequiredInt("retirement_age", form.Range(0, horizonAge(in.CurrentAge)))
	in.CurrentBalance = p.Float("current_balance", 0, form.Range(0, MaxBalance))
	in.AnnualContribution = p.Float("annual_contribution", 0, form.Range(0, ContributionLimit(in.CurrentAge)))
	in.ReturnRate = p.RequiredFloat("return_rate", form.Range(0, MaxRate))
	in.CurrentTaxRate = p.Float("current_tax_rate", 0, form.Range(0, 100))
	in.RetirementTaxRate = p.Float("retirement_tax_rate", 0, form.Range(0, 100))
	in.MAGI = p.Float("magi", 0, form.Range(0, MaxBalance))
	in.FilingStatus = p.Choice("filing_status", FilingSingle, FilingSingle, FilingMarriedJoint, FilingMarriedSeparate)

	if p.Has("current_age") && p.Has("retirement_age") {
		p.Check(in.RetirementAge > in.CurrentAge, "retirement_age", "INVALID_AGE_RANGE", "must be greater than current_age")
	}
	return in
}

func (in IRAInput) Query() form.Values {
	v := form.Values{}.
		SetInt("current_age", in.CurrentAge).
		SetInt("retirement_age", in.RetirementAge).
		SetFloat("current_balance", in.CurrentBalance).
		SetFloat("annual_contribution", in.AnnualContribution).
		SetFloat("return_rate", in.ReturnRate).
		SetFloat("current_tax_rate", in.CurrentTaxRate).
		SetFloat("retirement_tax_rate", in.RetirementTaxRate).
		SetString("filing_status", in.FilingStatus)
	if in.MAGI > 0 {
		v.SetFloat("magi", in.MAGI)
	}
	return v
}

// IRAAccount is the outcome for one tax treatment.
type IRAAccount struct {
	AnnualContribution float64           `json:"annual_contribution"`
	FinalBalance       float64           `json:"final_balance"`
	TotalContributions float64           `json:"total_contributions"`
	TaxAtWithdrawal    float64           `json:"tax_at_withdrawal"`
	NetBalance         float64           `json:"net_balance"`
	Projection         []projection.Year `json:"projection"`
}

// IRAResult compares both treatments. RothAdvantage is positive when the
// Roth account ends up ahead after counting the traditional account's
// upfront deduction.
type IRAResult struct {
	Years                 int        `json:"years"`
	ContributionLimit     float64    `json:"contribution_limit"`
	RothContributionLimit float64    `json:"roth_contribution_limit"`
	RothEligible          bool       `json:"roth_eligible"`
	Traditional           IRAAccount `json:"traditional"`
	Roth                  IRAAccount `json:"roth"`
	UpfrontTaxSavings     float64    `json:"upfront_tax_savings"`
	RothAdvantage         float64    `json:"roth_advantage"`
}

func CalculateIRA(in IRAInput) IRAResult {
	years := in.RetirementAge - in.CurrentAge
	limit := ContributionLimit(in.CurrentAge)
	rothLimit := RothContributionLimit(limit, in.MAGI, in.FilingStatus)
	rothContribution := math.Min(in.AnnualContribution, rothLimit)

	traditional := iraAccount(in, years, in.AnnualContribution)
	traditional.TaxAtWithdrawal = traditional.FinalBalance * pct(in.RetirementTaxRate)
	traditional.NetBalance = traditional.FinalBalance - traditional.TaxAtWithdrawal

	roth := iraAccount(in, years, rothContribution)
	roth.NetBalance = roth.FinalBalance

	upfront := traditional.TotalContributions * pct(in.CurrentTaxRate)

	return IRAResult{
		Years:                 projection.Final(traditional.Projection).Year,
		ContributionLimit:     limit,
		RothContributionLimit: rothLimit,
		RothEligible:          rothLimit > 0,
		Traditional:           traditional,
		Roth:                  roth,
		UpfrontTaxSavings:     upfront,
		RothAdvantage:         roth.NetBalance - (traditional.NetBalance + upfront),
	}
}

func iraAccount(in IRAInput, years int, contribution float64) IRAAccount {
	rows := projection.Project(projection.Schedule{
		StartBalance:       in.CurrentBalance,
		AnnualRate:         pct(in.ReturnRate),
		AnnualContribution: contribution,
		PeriodsPerYear:     projection.MonthsPerYear,
		Years:              years,
		StartAge:           in.CurrentAge,
	})
	final := projection.Final(rows)
	return IRAAccount{
		AnnualContribution: contribution,
		FinalBalance:       final.Balance,
		TotalContributions: final.TotalContributions,
		Projection:         rows,
	}
}

// ContributionLimit is the annual IRA limit including the catch-up amount.
func ContributionLimit(age int) float64 {
	if age >= IRACatchUpAge {
		return IRAContributionLimit + IRACatchUpContribution
	}
	return IRAContributionLimit
}

// RothContributionLimit applies the MAGI phase-out. A partially reduced
// limit is rounded up to the next $10 and never drops below $200.
func RothContributionLimit(limit, magi float64, filingStatus string) float64 {
	band, ok := rothPhaseOut[filingStatus]
	if !ok {
		band = rothPhaseOut[FilingSingle]
	}
	lo, hi := band[0], band[1]
	switch {
	case magi <= lo:
		return limit
	case magi >= hi:
		return 0
	}
	reduced := limit * (hi - magi) / (hi - lo)
	reduced = math.Ceil(reduced/10) * 10
	if reduced < 200 {
		reduced = 200
	}
	return math.Min(reduced, limit)
}
