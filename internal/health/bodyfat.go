// Package health holds the body-fat, pregnancy and running calculators.
package health

import (
	"math"

	"calculator-engine/internal/form"
)

const (
	SexMale   = "male"
	SexFemale = "female"

	UnitsInches      = "in"
	UnitsCentimeters = "cm"

	cmPerInch = 2.54

	CodeImplausibleResult = "IMPLAUSIBLE_RESULT"
)

// BodyFatInput takes circumference measurements in Units. Weight is pounds
// for inches and kilograms for centimetres; Age and Weight are optional.
type BodyFatInput struct {
	Sex    string
	Units  string
	Height float64
	Neck   float64
	Waist  float64
	Hip    float64
	Age    int
	Weight float64
}

func ParseBodyFat(p *form.Parser) BodyFatInput {
	var in BodyFatInput
	in.Sex = p.Choice("sex", "", SexMale, SexFemale)
	in.Units = p.Choice("units", UnitsInches, UnitsInches, UnitsCentimeters)
	in.Height = p.RequiredFloat("height", form.Range(0, 300))
	in.Neck = p.RequiredFloat("neck", form.Range(0, 300))
	in.Waist = p.RequiredFloat("waist", form.Range(0, 300))
	if in.Sex == SexFemale {
		in.Hip = p.RequiredFloat("hip", form.Range(0, 300))
	}
	in.Age = p.Int("age", 0, form.Range(0, 120))
	in.Weight = p.Float("weight", 0, form.Range(0, 1500))

	p.Check(in.Height > 0 || !p.Has("height"), "height", "INVALID_MEASUREMENT", "must be greater than zero")
	if in.Sex == SexFemale {
		p.Check(in.Waist+in.Hip > in.Neck, "waist", "INVALID_MEASUREMENT", "waist plus hip must exceed neck")
	} else {
		p.Check(in.Waist > in.Neck, "waist", "INVALID_MEASUREMENT", "waist must exceed neck")
	}
	return in
}

func (in BodyFatInput) Query() form.Values {
	v := form.Values{}.
		SetString("sex", in.Sex).
		SetString("units", in.Units).
		SetFloat("height", in.Height).
		SetFloat("neck", in.Neck).
		SetFloat("waist", in.Waist)
	if in.Sex == SexFemale {
		v.SetFloat("hip", in.Hip)
	}
	if in.Age > 0 {
		v.SetInt("age", in.Age)
	}
	if in.Weight > 0 {
		v.SetFloat("weight", in.Weight)
	}
	return v
}

type BodyFatResult struct {
	BodyFatPercent float64  `json:"body_fat_percent"`
	Category       string   `json:"category"`
	FatMass        float64  `json:"fat_mass,omitempty"`
	LeanMass       float64  `json:"lean_mass,omitempty"`
	BMI            float64  `json:"bmi,omitempty"`
	BMIBodyFat     *float64 `json:"bmi_body_fat_percent,omitempty"`
}

// CalculateBodyFat fails when the measurements put the estimate outside
// [0, 100), which happens when waist and neck are nearly equal.
func CalculateBodyFat(in BodyFatInput) (BodyFatResult, error) {
	percent := ArmyBodyFat(in.Sex, inches(in.Height, in.Units), inches(in.Neck, in.Units), inches(in.Waist, in.Units), inches(in.Hip, in.Units))
	if !(percent >= 0 && percent < 100) {
		return BodyFatResult{}, form.Errorf("waist", CodeImplausibleResult,
			"measurements give an implausible body fat of %.1f%%; check the neck and waist values", percent)
	}
	res := BodyFatResult{
		BodyFatPercent: percent,
		Category:       BodyFatCategory(in.Sex, percent),
	}

	if in.Weight > 0 {
		res.FatMass = in.Weight * percent / 100
		res.LeanMass = in.Weight - res.FatMass
		res.BMI = bmi(in.Weight, in.Height, in.Units)
		if in.Age > 0 {
			est := DeurenbergBodyFat(in.Sex, res.BMI, in.Age)
			res.BMIBodyFat = &est
		}
	}
	return res, nil
}

// ArmyBodyFat is the US Army / Navy circumference formula. All measurements
// are in inches.
func ArmyBodyFat(sex string, height, neck, waist, hip float64) float64 {
	if sex == SexFemale {
		return 163.205*math.Log10(waist+hip-neck) - 97.684*math.Log10(height) - 78.387
	}
	return 86.010*math.Log10(waist-neck) - 70.041*math.Log10(height) + 36.76
}

// DeurenbergBodyFat estimates adult body fat from BMI and age.
func DeurenbergBodyFat(sex string, bmi float64, age int) float64 {
	male := 0.0
	if sex == SexMale {
		male = 1
	}
	return 1.20*bmi + 0.23*float64(age) - 10.8*male - 5.4
}

type fatBand struct {
	below float64
	name  string
}

// ACE body-fat categories; each band covers values below its bound.
var fatBands = map[string][]fatBand{
	SexMale: {
		{2, "Below essential"},
		{6, "Essential fat"},
		{14, "Athletes"},
		{18, "Fitness"},
		{25, "Average"},
		{math.Inf(1), "Obese"},
	},
	SexFemale: {
		{10, "Below essential"},
		{14, "Essential fat"},
		{21, "Athletes"},
		{25, "Fitness"},
		{32, "Average"},
		{math.Inf(1), "Obese"},
	},
}

// BodyFatCategory looks up the ACE category for a percentage.
func BodyFatCategory(sex string, percent float64) string {
	bands, ok := fatBands[sex]
	if !ok {
		bands = fatBands[SexMale]
	}
	for _, b := range bands {
		if percent < b.below {
			return b.name
		}
	}
	return bands[len(bands)-1].name
}

func inches(v float64, units string) float64 {
	if units == UnitsCentimeters {
		return v / cmPerInch
	}
	return v
}

func bmi(weight, height float64, units string) float64 {
	if height <= 0 {
		return 0
	}
	if units == UnitsCentimeters {
		m := height / 100
		return weight / (m * m)
	}
	return 703 * weight / (height * height)
}
