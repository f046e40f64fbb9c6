// Package lifestyle holds the home-improvement and numerology calculators.
package lifestyle

import (
	"math"

	"calculator-engine/internal/form"
)

const (
	UnitsFeet   = "ft"
	UnitsMeters = "m"

	DefaultWastePercent = 10
	MaxWastePercent     = 50
)

// wallpaperDefaults holds standard opening and roll sizes per unit system.
var wallpaperDefaults = map[string]struct {
	door, window           float64
	rollWidth, rollLength float64
}{
	UnitsFeet:   {door: 21, window: 15, rollWidth: 20.5 / 12, rollLength: 33},
	UnitsMeters: {door: 1.95, window: 1.4, rollWidth: 0.53, rollLength: 10.05},
}

type WallpaperInput struct {
	Units      string
	Length     float64
	Width      float64
	Height     float64
	Doors      int
	Windows    int
	RollWidth  float64
	RollLength float64
	Waste      float64
}

func ParseWallpaper(p *form.Parser) WallpaperInput {
	var in WallpaperInput
	in.Units = p.Choice("units", UnitsFeet, UnitsFeet, UnitsMeters)
	defs := wallpaperDefaults[in.Units]

	in.Length = p.RequiredFloat("length", form.Range(0, 1000))
	in.Width = p.RequiredFloat("width", form.Range(0, 1000))
	in.Height = p.RequiredFloat("height", form.Range(0, 100))
	in.Doors = p.Int("doors", 0, form.Range(0, 50))
	in.Windows = p.Int("windows", 0, form.Range(0, 50))
	in.RollWidth = p.Float("roll_width", defs.rollWidth, form.Range(0.01, 100))
	in.RollLength = p.Float("roll_length", defs.rollLength, form.Range(0.01, 1000))
	in.Waste = p.Float("waste", DefaultWastePercent, form.Range(0, MaxWastePercent))

	p.Check(in.Height > 0 || !p.Has("height"), "height", "INVALID_DIMENSIONS", "must be greater than zero")
	p.Check(in.Length+in.Width > 0 || !p.Has("length") || !p.Has("width"), "length", "INVALID_DIMENSIONS", "room has no walls")
	return in
}

func (in WallpaperInput) Query() form.Values {
	return form.Values{}.
		SetString("units", in.Units).
		SetFloat("length", in.Length).
		SetFloat("width", in.Width).
		SetFloat("height", in.Height).
		SetInt("doors", in.Doors).
		SetInt("windows", in.Windows).
		SetFloat("roll_width", in.RollWidth).
		SetFloat("roll_length", in.RollLength).
		SetFloat("waste", in.Waste)
}

type WallpaperResult struct {
	Units          string  `json:"units"`
	WallArea       float64 `json:"wall_area"`
	OpeningsArea   float64 `json:"openings_area"`
	NetArea        float64 `json:"net_area"`
	AreaWithWaste  float64 `json:"area_with_waste"`
	RollArea       float64 `json:"roll_area"`
	Rolls          int     `json:"rolls"`
	OpeningsExceed bool    `json:"openings_exceed_walls"`
}

func CalculateWallpaper(in WallpaperInput) WallpaperResult {
	defs := wallpaperDefaults[in.Units]
	wall := 2 * (in.Length + in.Width) * in.Height
	openings := float64(in.Doors)*defs.door + float64(in.Windows)*defs.window
	net := math.Max(wall-openings, 0)
	withWaste := net * (1 + in.Waste/100)
	rollArea := in.RollWidth * in.RollLength

	return WallpaperResult{
		Units:          in.Units,
		WallArea:       wall,
		OpeningsArea:   openings,
		NetArea:        net,
		AreaWithWaste:  withWaste,
		RollArea:       rollArea,
		Rolls:          int(math.Ceil(withWaste / rollArea)),
		OpeningsExceed: openings > wall,
	}
}
