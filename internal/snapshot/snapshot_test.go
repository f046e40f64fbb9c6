package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"calculator-engine/internal/finance"
	"calculator-engine/internal/form"
)

func TestEncode_SortedAndEscaped(t *testing.T) {
	q := Encode("numerology", form.Values{"full_name": "Ada Lovelace", "birth_date": "1815-12-10"})
	assert.Equal(t, "calc=numerology&birth_date=1815-12-10&full_name=Ada+Lovelace", q)
}

func TestEncode_IgnoresCalculatorKeyInValues(t *testing.T) {
	q := Encode("binary", form.Values{"calc": "other", "value": "7"})
	assert.Equal(t, "calc=binary&value=7", q)
}

func TestDecode_RoundTrip(t *testing.T) {
	values := form.Values{"value": "-1f", "from_base": "16", "note": "a&b=c"}
	name, got, err := Decode("?" + Encode("binary", values))
	require.NoError(t, err)
	assert.Equal(t, "binary", name)
	assert.Equal(t, values, got)
}

func TestDecode_MissingCalculator(t *testing.T) {
	_, _, err := Decode("value=7")
	assert.ErrorIs(t, err, ErrNoCalculator)
}

func TestFromArgs_LastValueWins(t *testing.T) {
	var args fasthttp.Args
	args.Parse("years=5&years=10&calc=savings")
	assert.Equal(t, form.Values{"years": "10"}, FromArgs(&args))
}

// A typed input survives Query -> Encode -> Decode -> Parse unchanged.
func TestRoundTrip_TypedInput(t *testing.T) {
	p := form.NewParser(form.Values{
		"current_age": "30", "current_balance": "12,500", "annual_contribution": "$6000",
		"return_rate": "6.5%", "retirement_age": "65", "filing_status": "Single",
		"current_tax_rate": "22", "retirement_tax_rate": "12", "magi": "150000",
	})
	in := finance.ParseIRA(p)
	require.NoError(t, p.Err())

	name, values, err := Decode(Encode("ira", in.Query()))
	require.NoError(t, err)
	assert.Equal(t, "ira", name)

	p = form.NewParser(values)
	again := finance.ParseIRA(p)
	require.NoError(t, p.Err())
	assert.Equal(t, in, again)
}

func TestValues_WithoutCalculator(t *testing.T) {
	assert.Equal(t, form.Values{"min": "1", "max": "6"}, Values("?min=1&max=6"))
}
