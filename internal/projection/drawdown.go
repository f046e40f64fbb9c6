package projection

// DivisorFunc returns the distribution period for an age. ok is false when no
// withdrawal is required at that age.
type DivisorFunc func(age int) (divisor float64, ok bool)

// DrawdownSchedule parameterises a required-withdrawal projection.
type DrawdownSchedule struct {
	StartBalance float64
	AnnualRate   float64
	StartAge     int
	StartYear    int
	Years        int
	Divisor      DivisorFunc
}

// Drawdown projects a balance that pays out balance/divisor at the start of
// each year and earns AnnualRate on the remainder. Row n covers age
// StartAge+n; Balance is the end-of-year value.
func Drawdown(s DrawdownSchedule) []Year {
	years := clampYears(s.Years)
	rows := make([]Year, 0, years)
	balance := s.StartBalance

	for y := 0; y < years; y++ {
		age := s.StartAge + y
		var withdrawal float64
		if s.Divisor != nil {
			if d, ok := s.Divisor(age); ok && d > 0 {
				withdrawal = balance / d
			}
		}
		if withdrawal > balance {
			withdrawal = balance
		}
		balance -= withdrawal
		interest := balance * s.AnnualRate
		balance += interest

		rows = append(rows, Year{
			Year:         y,
			CalendarYear: calendarYear(s.StartYear, y),
			Age:          age,
			Withdrawal:   withdrawal,
			Interest:     interest,
			Balance:      balance,
		})
	}
	return rows
}

// TotalWithdrawals sums the withdrawal column.
func TotalWithdrawals(rows []Year) float64 {
	var total float64
	for _, r := range rows {
		total += r.Withdrawal
	}
	return total
}
