// Package snapshot encodes calculator inputs as a shareable query string.
package snapshot

import (
	"errors"
	"strings"

	"github.com/valyala/fasthttp"

	"calculator-engine/internal/form"
)

// CalculatorKey names the calculator inside a share query.
const CalculatorKey = "calc"

var ErrNoCalculator = errors.New("snapshot: query does not name a calculator")

// Encode renders calculator and values as "calc=<name>&k=v..." with the
// remaining keys in sorted order, so equal inputs give equal strings.
func Encode(calculator string, values form.Values) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Add(CalculatorKey, calculator)
	for _, k := range values.Keys() {
		if k == CalculatorKey {
			continue
		}
		args.Add(k, values[k])
	}
	return args.String()
}

// Decode reverses Encode. A leading "?" is ignored.
func Decode(query string) (string, form.Values, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Parse(strings.TrimPrefix(query, "?"))

	name := string(args.Peek(CalculatorKey))
	if name == "" {
		return "", nil, ErrNoCalculator
	}
	return name, FromArgs(args), nil
}

// Values parses a query string that may or may not name a calculator.
func Values(query string) form.Values {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Parse(strings.TrimPrefix(query, "?"))
	return FromArgs(args)
}

// FromArgs copies every argument except the calculator key. Repeated keys
// keep their last value.
func FromArgs(args *fasthttp.Args) form.Values {
	values := form.Values{}
	args.VisitAll(func(k, v []byte) {
		if string(k) == CalculatorKey {
			return
		}
		values[string(k)] = string(v)
	})
	return values
}
