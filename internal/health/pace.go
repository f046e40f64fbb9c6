package health

import (
	"math"

	"calculator-engine/internal/form"
)

const (
	PaceModePace     = "pace"
	PaceModeTime     = "time"
	PaceModeDistance = "distance"

	UnitKilometers = "km"
	UnitMiles      = "mi"

	KilometersPerMile = 1.609344
	maxSplits         = 200
)

// raceDistances are in kilometres.
var raceDistances = map[string]float64{
	"5k":            5,
	"10k":           10,
	"half-marathon": 21.0975,
	"marathon":      42.195,
}

// PaceInput solves for whichever of pace, time or distance Mode names.
// Time is total seconds; Pace is seconds per Unit.
type PaceInput struct {
	Mode     string
	Unit     string
	Distance float64
	Time     float64
	Pace     float64
}

func ParsePace(p *form.Parser) PaceInput {
	var in PaceInput
	in.Mode = p.Choice("mode", PaceModePace, PaceModePace, PaceModeTime, PaceModeDistance)
	in.Unit = p.Choice("unit", UnitKilometers, UnitKilometers, UnitMiles)

	if in.Mode != PaceModeDistance {
		if race := p.Choice("race", "none", "none", "5k", "10k", "half-marathon", "marathon"); race != "none" {
			in.Distance = fromKilometers(raceDistances[race], in.Unit)
		} else {
			in.Distance = p.RequiredFloat("distance", form.Range(0, 1000))
			p.Check(in.Distance > 0 || !p.Has("distance"), "distance", "INVALID_DISTANCE", "must be greater than zero")
		}
	}
	if in.Mode != PaceModeTime {
		in.Time = p.Clock("time", true)
		p.Check(in.Time > 0 || !p.Has("time"), "time", "INVALID_DURATION", "must be greater than zero")
	}
	if in.Mode != PaceModePace {
		in.Pace = p.Clock("pace", true)
		p.Check(in.Pace > 0 || !p.Has("pace"), "pace", "INVALID_DURATION", "must be greater than zero")
	}
	return in
}

func (in PaceInput) Query() form.Values {
	v := form.Values{}.
		SetString("mode", in.Mode).
		SetString("unit", in.Unit)
	if in.Mode != PaceModeDistance {
		v.SetFloat("distance", in.Distance)
	}
	if in.Mode != PaceModeTime {
		v.SetString("time", form.FormatClock(in.Time))
	}
	if in.Mode != PaceModePace {
		v.SetString("pace", form.FormatClock(in.Pace))
	}
	return v
}

type Split struct {
	Distance float64 `json:"distance"`
	Elapsed  string  `json:"elapsed"`
}

type PaceResult struct {
	DistanceKm  float64 `json:"distance_km"`
	DistanceMi  float64 `json:"distance_mi"`
	TimeSeconds float64 `json:"time_seconds"`
	Time        string  `json:"time"`
	PacePerKm   string  `json:"pace_per_km"`
	PacePerMile string  `json:"pace_per_mile"`
	SpeedKph    float64 `json:"speed_kph"`
	SpeedMph    float64 `json:"speed_mph"`
	Splits      []Split `json:"splits"`
}

func CalculatePace(in PaceInput) PaceResult {
	distance, seconds := in.Distance, in.Time
	switch in.Mode {
	case PaceModeTime:
		seconds = in.Pace * distance
	case PaceModeDistance:
		distance = in.Time / in.Pace
	}

	km := toKilometers(distance, in.Unit)
	mi := km / KilometersPerMile

	res := PaceResult{
		DistanceKm:  km,
		DistanceMi:  mi,
		TimeSeconds: seconds,
		Time:        clock(seconds),
	}
	if km > 0 && seconds > 0 {
		res.PacePerKm = clock(seconds / km)
		res.PacePerMile = clock(seconds / mi)
		res.SpeedKph = km / (seconds / 3600)
		res.SpeedMph = mi / (seconds / 3600)
	}

	perUnit := 0.0
	if distance > 0 {
		perUnit = seconds / distance
	}
	res.Splits = splits(distance, perUnit)
	return res
}

func splits(distance, perUnit float64) []Split {
	whole := int(math.Min(math.Floor(distance), maxSplits))
	out := make([]Split, 0, whole+1)
	for i := 1; i <= whole; i++ {
		out = append(out, Split{Distance: float64(i), Elapsed: clock(float64(i) * perUnit)})
	}
	if distance > float64(whole) && whole < maxSplits {
		out = append(out, Split{Distance: distance, Elapsed: clock(distance * perUnit)})
	}
	return out
}

// clock rounds to the nearest second before formatting.
func clock(seconds float64) string {
	return form.FormatClock(math.Round(seconds))
}

func toKilometers(d float64, unit string) float64 {
	if unit == UnitMiles {
		return d * KilometersPerMile
	}
	return d
}

func fromKilometers(km float64, unit string) float64 {
	if unit == UnitMiles {
		return km / KilometersPerMile
	}
	return km
}
