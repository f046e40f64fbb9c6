// Package projection implements the periodic compounding projector shared by
// the accumulation and drawdown calculators.
package projection

// MonthsPerYear is the default number of compounding periods per year.
const MonthsPerYear = 12

// MaxYears bounds every projection.
const MaxYears = 100

// Year is one row of a projection. Row 0 of an accumulation projection is
// the starting state.
type Year struct {
	Year               int     `json:"year"`
	CalendarYear       int     `json:"calendar_year,omitempty"`
	Age                int     `json:"age"`
	Contribution       float64 `json:"contribution"`
	Withdrawal         float64 `json:"withdrawal,omitempty"`
	Interest           float64 `json:"interest"`
	Balance            float64 `json:"balance"`
	TotalContributions float64 `json:"total_contributions"`
}

// Schedule parameterises an accumulation projection. Rates are fractions
// (0.05 means 5%).
type Schedule struct {
	StartBalance       float64
	AnnualRate         float64
	AnnualContribution float64
	// ContributionGrowth raises the contribution every year after the first.
	ContributionGrowth float64
	PeriodsPerYear     int
	Years              int
	StartAge           int
	StartYear          int
}

// Project compounds the schedule period by period. Within each period the
// balance first earns interest, then receives its share of the annual
// contribution. The returned slice has Years+1 rows.
func Project(s Schedule) []Year {
	periods := s.PeriodsPerYear
	if periods <= 0 {
		periods = MonthsPerYear
	}
	years := clampYears(s.Years)

	rows := make([]Year, 0, years+1)
	balance := s.StartBalance
	rows = append(rows, Year{
		Year:         0,
		CalendarYear: calendarYear(s.StartYear, 0),
		Age:          s.StartAge,
		Balance:      balance,
	})

	periodicRate := s.AnnualRate / float64(periods)
	contribution := s.AnnualContribution
	var total float64

	for y := 1; y <= years; y++ {
		if y > 1 {
			contribution *= 1 + s.ContributionGrowth
		}
		perPeriod := contribution / float64(periods)

		var interest float64
		for p := 0; p < periods; p++ {
			gain := balance * periodicRate
			balance += gain
			balance += perPeriod
			interest += gain
		}
		total += contribution

		rows = append(rows, Year{
			Year:               y,
			CalendarYear:       calendarYear(s.StartYear, y),
			Age:                s.StartAge + y,
			Contribution:       contribution,
			Interest:           interest,
			Balance:            balance,
			TotalContributions: total,
		})
	}

	return rows
}

// Final returns the last row, or the zero Year for an empty projection.
func Final(rows []Year) Year {
	if len(rows) == 0 {
		return Year{}
	}
	return rows[len(rows)-1]
}

// Balances extracts the balance column.
func Balances(rows []Year) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Balance
	}
	return out
}

func clampYears(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxYears {
		return MaxYears
	}
	return n
}

func calendarYear(start, offset int) int {
	if start == 0 {
		return 0
	}
	return start + offset
}
