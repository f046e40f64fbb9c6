package lifestyle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calculator-engine/internal/form"
)

func TestWallpaper_Feet(t *testing.T) {
	p := form.NewParser(form.Values{"length": "12", "width": "12", "height": "8", "doors": "1", "windows": "2"})
	in := ParseWallpaper(p)
	require.NoError(t, p.Err())

	res := CalculateWallpaper(in)
	assert.InDelta(t, 384, res.WallArea, 1e-9)
	assert.InDelta(t, 51, res.OpeningsArea, 1e-9)
	assert.InDelta(t, 333, res.NetArea, 1e-9)
	assert.InDelta(t, 366.3, res.AreaWithWaste, 1e-9)
	assert.InDelta(t, 56.375, res.RollArea, 1e-9)
	assert.Equal(t, 7, res.Rolls)
	assert.False(t, res.OpeningsExceed)
}

func TestWallpaper_Metric(t *testing.T) {
	p := form.NewParser(form.Values{"units": "M", "length": "4", "width": "3", "height": "2.5", "doors": "1", "waste": "0"})
	in := ParseWallpaper(p)
	require.NoError(t, p.Err())
	assert.Equal(t, UnitsMeters, in.Units)

	res := CalculateWallpaper(in)
	assert.InDelta(t, 35, res.WallArea, 1e-9)
	assert.InDelta(t, 33.05, res.NetArea, 1e-9)
	assert.Equal(t, 7, res.Rolls)
}

func TestWallpaper_WasteIsClamped(t *testing.T) {
	p := form.NewParser(form.Values{"length": "10", "width": "10", "height": "8", "waste": "80"})
	in := ParseWallpaper(p)
	require.NoError(t, p.Err())
	assert.Equal(t, float64(MaxWastePercent), in.Waste)
	require.Len(t, p.Adjustments(), 1)
	assert.Equal(t, "waste", p.Adjustments()[0].Field)
}

func TestWallpaper_OpeningsLargerThanWalls(t *testing.T) {
	res := CalculateWallpaper(WallpaperInput{
		Units: UnitsFeet, Length: 2, Width: 2, Height: 2, Doors: 3,
		RollWidth: 1, RollLength: 10, Waste: 10,
	})
	assert.True(t, res.OpeningsExceed)
	assert.Zero(t, res.NetArea)
	assert.Zero(t, res.Rolls)
}

func TestWallpaper_ZeroHeight(t *testing.T) {
	p := form.NewParser(form.Values{"length": "10", "width": "10", "height": "0"})
	ParseWallpaper(p)

	var verr *form.ValidationError
	require.True(t, errors.As(p.Err(), &verr))
	assert.Equal(t, "INVALID_DIMENSIONS", verr.Errors[0].Code)
	assert.Equal(t, "height", verr.Errors[0].Field)
}

func TestWallpaper_QueryRoundTrip(t *testing.T) {
	p := form.NewParser(form.Values{"length": "12.5", "width": "10", "height": "9", "windows": "3"})
	in := ParseWallpaper(p)
	require.NoError(t, p.Err())

	p = form.NewParser(in.Query())
	again := ParseWallpaper(p)
	require.NoError(t, p.Err())
	assert.Equal(t, in, again)
}

func TestReduce(t *testing.T) {
	cases := map[int]int{0: 0, 7: 7, 10: 1, 29: 11, 38: 11, 99: 9, 1990: 1, 2000: 2, 22: 22, 33: 33}
	for in, want := range cases {
		assert.Equal(t, want, Reduce(in), "Reduce(%d)", in)
	}
}

func TestLifePath(t *testing.T) {
	assert.Equal(t, 5, LifePath(time.Date(1990, 7, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 22, LifePath(time.Date(2000, 11, 9, 0, 0, 0, 0, time.UTC)))
}

func TestLetterValue(t *testing.T) {
	assert.Equal(t, 1, LetterValue('a'))
	assert.Equal(t, 9, LetterValue('I'))
	assert.Equal(t, 1, LetterValue('J'))
	assert.Equal(t, 8, LetterValue('z'))
	assert.Equal(t, 0, LetterValue('-'))
	assert.Equal(t, 0, LetterValue('é'))
}

func TestNumerology_FullName(t *testing.T) {
	p := form.NewParser(form.Values{"birth_date": "1990-07-15", "full_name": "  John   Smith "})
	in := ParseNumerology(p)
	require.NoError(t, p.Err())
	assert.Equal(t, "John Smith", in.FullName)

	res := CalculateNumerology(in)
	assert.Equal(t, 5, res.LifePath.Number)
	require.NotNil(t, res.Expression)
	assert.Equal(t, 8, res.Expression.Number)
	assert.Equal(t, 6, res.SoulUrge.Number)
	assert.Equal(t, 11, res.Personality.Number)
	assert.True(t, res.Personality.Master)
	assert.NotEmpty(t, res.Personality.Meaning)
}

func TestNumerology_NameWithoutVowels(t *testing.T) {
	p := form.NewParser(form.Values{"birth_date": "1990-07-15", "full_name": "Lynn"})
	res := CalculateNumerology(ParseNumerology(p))
	require.NoError(t, p.Err())

	require.NotNil(t, res.Expression)
	require.NotNil(t, res.Personality)
	assert.Equal(t, res.Expression.Number, res.Personality.Number)
	assert.NotEmpty(t, res.Personality.Meaning)
	assert.Nil(t, res.SoulUrge)
}

func TestNumerology_NameOfOnlyVowels(t *testing.T) {
	p := form.NewParser(form.Values{"birth_date": "1990-07-15", "full_name": "Io"})
	res := CalculateNumerology(ParseNumerology(p))
	require.NoError(t, p.Err())

	require.NotNil(t, res.SoulUrge)
	assert.Equal(t, 6, res.SoulUrge.Number)
	assert.Nil(t, res.Personality)
}

func TestNumerology_BirthDateOnly(t *testing.T) {
	p := form.NewParser(form.Values{"birth_date": "2000-11-09"})
	res := CalculateNumerology(ParseNumerology(p))
	require.NoError(t, p.Err())
	assert.Equal(t, 22, res.LifePath.Number)
	assert.True(t, res.LifePath.Master)
	assert.Nil(t, res.Expression)
}

func TestNumerology_NameWithoutLetters(t *testing.T) {
	p := form.NewParser(form.Values{"birth_date": "2000-11-09", "full_name": "1234"})
	ParseNumerology(p)

	var verr *form.ValidationError
	require.True(t, errors.As(p.Err(), &verr))
	assert.Equal(t, form.CodeInvalidValue, verr.Errors[0].Code)
}

func TestNumerology_MissingBirthDate(t *testing.T) {
	p := form.NewParser(form.Values{"full_name": "Ada"})
	ParseNumerology(p)

	var verr *form.ValidationError
	require.True(t, errors.As(p.Err(), &verr))
	assert.Equal(t, form.CodeMissingField, verr.Errors[0].Code)
}
