package finance

import (
	"math"

	"calculator-engine/internal/form"
)

// SocialSecurityInput estimates a retirement benefit from AIME.
type SocialSecurityInput struct {
	AIME      float64
	BirthYear int
	ClaimAge  int
}

// ParseSocialSecurity accepts aime directly, or average_annual_earnings which
// is divided by twelve.
func ParseSocialSecurity(p *form.Parser) SocialSecurityInput {
	var in SocialSecurityInput
	if !p.Has("aime") && p.Has("average_annual_earnings") {
		in.AIME = p.Float("average_annual_earnings", 0, form.Range(0, MaxBalance)) / 12
	} else {
		in.AIME = p.RequiredFloat("aime", form.Range(0, MaxBalance))
	}
	in.BirthYear = p.RequiredInt("birth_year", form.Range(1900, 2100))
	in.ClaimAge = p.Int("claim_age", 67, form.Range(EarliestClaimAge, LatestClaimAge))
	return in
}

func (in SocialSecurityInput) Query() form.Values {
	return form.Values{}.
		SetFloat("aime", in.AIME).
		SetInt("birth_year", in.BirthYear).
		SetInt("claim_age", in.ClaimAge)
}

type SocialSecurityResult struct {
	PIA                      float64 `json:"pia"`
	FullRetirementAgeYears   int     `json:"full_retirement_age_years"`
	FullRetirementAgeMonths  int     `json:"full_retirement_age_months"`
	MonthsFromFullRetirement int     `json:"months_from_full_retirement"`
	AdjustmentPercent        float64 `json:"adjustment_percent"`
	MonthlyBenefit           float64 `json:"monthly_benefit"`
	AnnualBenefit            float64 `json:"annual_benefit"`
}

func CalculateSocialSecurity(in SocialSecurityInput) SocialSecurityResult {
	pia := PrimaryInsuranceAmount(in.AIME)
	fraYears, fraMonths := FullRetirementAge(in.BirthYear)
	delta := in.ClaimAge*12 - (fraYears*12 + fraMonths)
	factor := ClaimFactor(delta)
	monthly := math.Floor(pia * factor)

	return SocialSecurityResult{
		PIA:                      pia,
		FullRetirementAgeYears:   fraYears,
		FullRetirementAgeMonths:  fraMonths,
		MonthsFromFullRetirement: delta,
		AdjustmentPercent:        (factor - 1) * 100,
		MonthlyBenefit:           monthly,
		AnnualBenefit:            monthly * 12,
	}
}

// PrimaryInsuranceAmount applies the 90/32/15 percent bend-point formula and
// truncates to the dime.
func PrimaryInsuranceAmount(aime float64) float64 {
	if aime <= 0 {
		return 0
	}
	pia := 0.9 * math.Min(aime, PIABendPoint1)
	if aime > PIABendPoint1 {
		pia += 0.32 * (math.Min(aime, PIABendPoint2) - PIABendPoint1)
	}
	if aime > PIABendPoint2 {
		pia += 0.15 * (aime - PIABendPoint2)
	}
	return math.Floor(pia*10) / 10
}

// FullRetirementAge returns the FRA for a birth year.
func FullRetirementAge(birthYear int) (years, months int) {
	switch {
	case birthYear <= 1937:
		return 65, 0
	case birthYear <= 1942:
		return 65, (birthYear - 1937) * 2
	case birthYear <= 1954:
		return 66, 0
	case birthYear <= 1959:
		return 66, (birthYear - 1954) * 2
	default:
		return 67, 0
	}
}

// ClaimFactor converts months relative to FRA into a benefit multiplier.
// Early claims lose 5/9 of 1% per month for the first 36 months and 5/12 of
// 1% after that; delayed claims earn 2/3 of 1% per month.
func ClaimFactor(monthsFromFRA int) float64 {
	switch {
	case monthsFromFRA < 0:
		early := -monthsFromFRA
		first := min(early, 36)
		rest := early - first
		return 1 - float64(first)*5.0/900.0 - float64(rest)*5.0/1200.0
	case monthsFromFRA > 0:
		return 1 + float64(monthsFromFRA)*2.0/300.0
	}
	return 1
}
