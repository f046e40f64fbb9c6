package calculators

import (
	"cmp"
	"fmt"
	"slices"

	"calculator-engine/internal/finance"
	"calculator-engine/internal/health"
	"calculator-engine/internal/lifestyle"
	"calculator-engine/internal/mathcalc"
	"calculator-engine/internal/model"
)

const (
	CategoryFinance   = "finance"
	CategoryHealth    = "health"
	CategoryMath      = "math"
	CategoryLifestyle = "lifestyle"
)

var registry = map[string]Calculator{
	"savings": &calculator[finance.SavingsInput, finance.SavingsResult]{
		name: "savings", title: "Savings Growth", category: CategoryFinance,
		parse: finance.ParseSavings,
		apply: pure(finance.CalculateSavings),
	},
	"ira": &calculator[finance.IRAInput, finance.IRAResult]{
		name: "ira", title: "Traditional vs Roth IRA", category: CategoryFinance,
		parse: finance.ParseIRA,
		apply: pure(finance.CalculateIRA),
		notes: iraNotes,
	},
	"rmd": &calculator[finance.RMDInput, finance.RMDResult]{
		name: "rmd", title: "Required Minimum Distribution", category: CategoryFinance,
		parse: finance.ParseRMD,
		apply: pure(finance.CalculateRMD),
		notes: rmdNotes,
	},
	"social-security": &calculator[finance.SocialSecurityInput, finance.SocialSecurityResult]{
		name: "social-security", title: "Social Security Benefit", category: CategoryFinance,
		parse: finance.ParseSocialSecurity,
		apply: pure(finance.CalculateSocialSecurity),
	},
	"body-fat": &calculator[health.BodyFatInput, health.BodyFatResult]{
		name: "body-fat", title: "Body Fat Percentage", category: CategoryHealth,
		parse: health.ParseBodyFat,
		apply: health.CalculateBodyFat,
	},
	"due-date": &calculator[health.DueDateInput, health.DueDateResult]{
		name: "due-date", title: "Pregnancy Due Date", category: CategoryHealth,
		parse: health.ParseDueDate,
		apply: pure(health.CalculateDueDate),
		notes: dueDateNotes,
	},
	"ovulation": &calculator[health.OvulationInput, health.OvulationResult]{
		name: "ovulation", title: "Ovulation Calendar", category: CategoryHealth,
		parse: health.ParseOvulation,
		apply: pure(health.CalculateOvulation),
	},
	"pace": &calculator[health.PaceInput, health.PaceResult]{
		name: "pace", title: "Running Pace", category: CategoryHealth,
		parse: health.ParsePace,
		apply: pure(health.CalculatePace),
	},
	"binary": &calculator[mathcalc.BinaryInput, mathcalc.BinaryResult]{
		name: "binary", title: "Binary Converter", category: CategoryMath,
		parse: mathcalc.ParseBinary,
		apply: mathcalc.CalculateBinary,
	},
	"confidence-interval": &calculator[mathcalc.ConfidenceInput, mathcalc.ConfidenceResult]{
		name: "confidence-interval", title: "Confidence Interval", category: CategoryMath,
		parse: mathcalc.ParseConfidence,
		apply: pure(mathcalc.CalculateConfidence),
	},
	"random": &calculator[mathcalc.RandomInput, mathcalc.RandomResult]{
		name: "random", title: "Random Number Generator", category: CategoryMath,
		parse: mathcalc.ParseRandom,
		apply: mathcalc.CalculateRandom,
	},
	"wallpaper": &calculator[lifestyle.WallpaperInput, lifestyle.WallpaperResult]{
		name: "wallpaper", title: "Wallpaper", category: CategoryLifestyle,
		parse: lifestyle.ParseWallpaper,
		apply: pure(lifestyle.CalculateWallpaper),
		notes: wallpaperNotes,
	},
	"numerology": &calculator[lifestyle.NumerologyInput, lifestyle.NumerologyResult]{
		name: "numerology", title: "Numerology", category: CategoryLifestyle,
		parse: lifestyle.ParseNumerology,
		apply: pure(lifestyle.CalculateNumerology),
	},
}

func Get(name string) (Calculator, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns every calculator ordered by category, then name.
func List() []model.CalculatorInfo {
	infos := make([]model.CalculatorInfo, 0, len(registry))
	for _, c := range registry {
		infos = append(infos, model.CalculatorInfo{Name: c.Name(), Title: c.Title(), Category: c.Category()})
	}
	slices.SortFunc(infos, func(a, b model.CalculatorInfo) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return infos
}

func iraNotes(in finance.IRAInput, res finance.IRAResult) []model.CalculationMessage {
	switch {
	case !res.RothEligible:
		return []model.CalculationMessage{warning("magi", "ROTH_INELIGIBLE",
			"income is above the Roth phase-out range; Roth contributions are not allowed")}
	case res.RothContributionLimit < in.AnnualContribution:
		return []model.CalculationMessage{warning("magi", "ROTH_LIMIT_REDUCED",
			fmt.Sprintf("Roth contribution reduced to $%.0f by the income phase-out", res.RothContributionLimit))}
	}
	return nil
}

func rmdNotes(in finance.RMDInput, _ finance.RMDResult) []model.CalculationMessage {
	if in.Age >= finance.RMDStartAge {
		return nil
	}
	return []model.CalculationMessage{warning("age", "RMD_NOT_YET_REQUIRED",
		fmt.Sprintf("distributions are not required until age %d", finance.RMDStartAge))}
}

func dueDateNotes(_ health.DueDateInput, res health.DueDateResult) []model.CalculationMessage {
	if res.GestationalAge == nil || !res.GestationalAge.PostTerm {
		return nil
	}
	return []model.CalculationMessage{warning("as_of", "POST_TERM", "the reference date is more than 42 weeks into the pregnancy")}
}

func wallpaperNotes(_ lifestyle.WallpaperInput, res lifestyle.WallpaperResult) []model.CalculationMessage {
	if !res.OpeningsExceed {
		return nil
	}
	return []model.CalculationMessage{warning("doors", "OPENINGS_EXCEED_WALLS", "doors and windows cover more than the wall area")}
}
