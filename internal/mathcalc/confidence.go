package mathcalc

import (
	"math"

	"calculator-engine/internal/form"
)

// zScores are two-sided critical values of the standard normal distribution.
var zScores = map[float64]float64{
	90: 1.6448536269514722,
	95: 1.959963984540054,
	99: 2.5758293035489004,
}

type ConfidenceInput struct {
	Mean            float64
	StdDev          float64
	SampleSize      int
	ConfidenceLevel float64
}

func ParseConfidence(p *form.Parser) ConfidenceInput {
	var in ConfidenceInput
	in.Mean = p.RequiredFloat("mean")
	in.StdDev = p.RequiredFloat("std_dev", form.Range(0, math.MaxFloat64))
	in.SampleSize = p.RequiredInt("sample_size", form.Range(1, 1_000_000_000))
	in.ConfidenceLevel = p.Float("confidence_level", 95, form.OneOf(90, 95, 99))
	return in
}

func (in ConfidenceInput) Query() form.Values {
	return form.Values{}.
		SetFloat("mean", in.Mean).
		SetFloat("std_dev", in.StdDev).
		SetInt("sample_size", in.SampleSize).
		SetFloat("confidence_level", in.ConfidenceLevel)
}

type ConfidenceResult struct {
	ConfidenceLevel float64 `json:"confidence_level"`
	ZScore          float64 `json:"z_score"`
	StandardError   float64 `json:"standard_error"`
	MarginOfError   float64 `json:"margin_of_error"`
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
}

// CalculateConfidence builds a z-interval around the sample mean.
func CalculateConfidence(in ConfidenceInput) ConfidenceResult {
	z := zScores[in.ConfidenceLevel]
	se := in.StdDev / math.Sqrt(float64(in.SampleSize))
	margin := z * se
	return ConfidenceResult{
		ConfidenceLevel: in.ConfidenceLevel,
		ZScore:          z,
		StandardError:   se,
		MarginOfError:   margin,
		Lower:           in.Mean - margin,
		Upper:           in.Mean + margin,
	}
}
