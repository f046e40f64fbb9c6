package health

import (
	"time"

	"calculator-engine/internal/form"
)

const (
	gestationDays       = 280
	standardCycleLength = 28
	lutealPhaseDays     = 14
	firstTrimesterDays  = 13*7 + 6
	secondTrimesterDays = 27*7 + 6
	postTermDays        = 42 * 7
)

// DueDateInput estimates a due date from the last menstrual period. AsOf is
// optional; when zero no gestational age is reported.
type DueDateInput struct {
	LMP         time.Time
	CycleLength int
	AsOf        time.Time
}

func ParseDueDate(p *form.Parser) DueDateInput {
	var in DueDateInput
	in.LMP = p.RequiredDate("lmp")
	in.CycleLength = p.Int("cycle_length", standardCycleLength, form.Range(20, 45))
	if asOf, ok := p.Date("as_of"); ok {
		in.AsOf = asOf
		p.Check(!asOf.Before(in.LMP), "as_of", "DATE_BEFORE_LMP", "must not be before lmp")
	}
	return in
}

func (in DueDateInput) Query() form.Values {
	v := form.Values{}.
		SetDate("lmp", in.LMP).
		SetInt("cycle_length", in.CycleLength)
	if !in.AsOf.IsZero() {
		v.SetDate("as_of", in.AsOf)
	}
	return v
}

// GestationalAge is the elapsed pregnancy at a reference date.
type GestationalAge struct {
	AsOf          string `json:"as_of"`
	Weeks         int    `json:"weeks"`
	Days          int    `json:"days"`
	Trimester     int    `json:"trimester"`
	DaysRemaining int    `json:"days_remaining"`
	PostTerm      bool   `json:"post_term"`
}

type DueDateResult struct {
	DueDate            string          `json:"due_date"`
	ConceptionDate     string          `json:"conception_date"`
	FirstTrimesterEnd  string          `json:"first_trimester_end"`
	SecondTrimesterEnd string          `json:"second_trimester_end"`
	GestationalAge     *GestationalAge `json:"gestational_age,omitempty"`
}

// CalculateDueDate applies Naegele's rule, shifted by the difference
// between the cycle length and a 28-day cycle.
func CalculateDueDate(in DueDateInput) DueDateResult {
	shift := in.CycleLength - standardCycleLength
	due := addDays(in.LMP, gestationDays+shift)

	res := DueDateResult{
		DueDate:            form.FormatDate(due),
		ConceptionDate:     form.FormatDate(addDays(in.LMP, in.CycleLength-lutealPhaseDays)),
		FirstTrimesterEnd:  form.FormatDate(addDays(in.LMP, firstTrimesterDays+shift)),
		SecondTrimesterEnd: form.FormatDate(addDays(in.LMP, secondTrimesterDays+shift)),
	}

	if !in.AsOf.IsZero() {
		elapsed := daysBetween(in.LMP, in.AsOf) - shift
		if elapsed < 0 {
			elapsed = 0
		}
		trimester := 1
		switch {
		case elapsed > secondTrimesterDays:
			trimester = 3
		case elapsed > firstTrimesterDays:
			trimester = 2
		}
		res.GestationalAge = &GestationalAge{
			AsOf:          form.FormatDate(in.AsOf),
			Weeks:         elapsed / 7,
			Days:          elapsed % 7,
			Trimester:     trimester,
			DaysRemaining: daysBetween(in.AsOf, due),
			PostTerm:      elapsed > postTermDays,
		}
	}
	return res
}

// OvulationInput tracks upcoming cycles from the last period.
type OvulationInput struct {
	LMP         time.Time
	CycleLength int
	LutealPhase int
	Cycles      int
}

func ParseOvulation(p *form.Parser) OvulationInput {
	var in OvulationInput
	in.LMP = p.RequiredDate("lmp")
	in.CycleLength = p.Int("cycle_length", standardCycleLength, form.Range(21, 45))
	in.LutealPhase = p.Int("luteal_phase", lutealPhaseDays, form.Range(9, 16))
	in.Cycles = p.Int("cycles", 3, form.Range(1, 12))
	return in
}

func (in OvulationInput) Query() form.Values {
	return form.Values{}.
		SetDate("lmp", in.LMP).
		SetInt("cycle_length", in.CycleLength).
		SetInt("luteal_phase", in.LutealPhase).
		SetInt("cycles", in.Cycles)
}

type Cycle struct {
	PeriodStart  string `json:"period_start"`
	FertileStart string `json:"fertile_start"`
	Ovulation    string `json:"ovulation"`
	FertileEnd   string `json:"fertile_end"`
	NextPeriod   string `json:"next_period"`
}

type OvulationResult struct {
	Cycles []Cycle `json:"cycles"`
}

// CalculateOvulation places ovulation LutealPhase days before the next
// period; the fertile window runs from five days before to one day after.
func CalculateOvulation(in OvulationInput) OvulationResult {
	cycles := make([]Cycle, 0, in.Cycles)
	for i := 0; i < in.Cycles; i++ {
		start := addDays(in.LMP, i*in.CycleLength)
		next := addDays(start, in.CycleLength)
		ovulation := addDays(next, -in.LutealPhase)
		cycles = append(cycles, Cycle{
			PeriodStart:  form.FormatDate(start),
			FertileStart: form.FormatDate(addDays(ovulation, -5)),
			Ovulation:    form.FormatDate(ovulation),
			FertileEnd:   form.FormatDate(addDays(ovulation, 1)),
			NextPeriod:   form.FormatDate(next),
		})
	}
	return OvulationResult{Cycles: cycles}
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
