// Package form turns raw calculator inputs (form fields, query strings, JSON
// bodies) into typed parameters. Out-of-range numbers are clamped to the
// nearest bound and recorded; missing or unparsable required fields are
// collected as field errors.
package form

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// DateLayout is the only accepted date format for inputs and outputs.
const DateLayout = "2006-01-02"

// Values holds raw calculator inputs keyed by field name.
type Values map[string]string

// Get returns the trimmed value for key. Blank values count as missing.
func (v Values) Get(key string) (string, bool) {
	raw, ok := v[key]
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Keys returns the field names in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v Values) SetString(key, value string) Values {
	v[key] = value
	return v
}

func (v Values) SetFloat(key string, f float64) Values {
	v[key] = FormatFloat(f)
	return v
}

func (v Values) SetInt(key string, n int) Values {
	v[key] = strconv.Itoa(n)
	return v
}

func (v Values) SetBool(key string, b bool) Values {
	v[key] = strconv.FormatBool(b)
	return v
}

func (v Values) SetDate(key string, t time.Time) Values {
	v[key] = FormatDate(t)
	return v
}

// Clone returns a copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// UnmarshalJSON accepts an object whose members are strings, numbers or
// booleans. Non-string members keep their literal JSON text so numbers are
// never rounded through float64 on the way in. Null members are dropped.
func (v *Values) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Values, len(raw))
	for k, member := range raw {
		member = bytes.TrimSpace(member)
		switch {
		case len(member) == 0 || bytes.Equal(member, []byte("null")):
			continue
		case member[0] == '"':
			var s string
			if err := json.Unmarshal(member, &s); err != nil {
				return err
			}
			out[k] = s
		case member[0] == '{' || member[0] == '[':
			return &FieldError{Field: k, Code: CodeInvalidValue, Message: "must be a string, number or boolean"}
		default:
			out[k] = string(member)
		}
	}
	*v = out
	return nil
}

// FormatFloat renders f with the fewest digits that parse back to the same
// float64.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock renders whole seconds as h:mm:ss (or m:ss under an hour).
// Fractional seconds fall back to a plain decimal so they round-trip.
func FormatClock(seconds float64) string {
	if seconds != float64(int64(seconds)) {
		return FormatFloat(seconds)
	}
	total := int64(seconds)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return sign + strconv.FormatInt(h, 10) + ":" + pad2(m) + ":" + pad2(s)
	}
	return sign + strconv.FormatInt(m, 10) + ":" + pad2(s)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
