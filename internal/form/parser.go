package form

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Parser reads typed fields out of Values. It never stops at the first
// problem: every accessor returns a usable zero value and the errors are
// collected for Err.
type Parser struct {
	values      Values
	errs        []*FieldError
	adjustments []Adjustment
}

func NewParser(values Values) *Parser {
	if values == nil {
		values = Values{}
	}
	return &Parser{values: values}
}

// Option constrains a numeric field.
type Option func(*numberRule)

type numberRule struct {
	min, max float64
	hasRange bool
	allowed  []float64
}

// Range clamps the value into [min, max].
func Range(min, max float64) Option {
	return func(r *numberRule) {
		r.min, r.max, r.hasRange = min, max, true
	}
}

// OneOf snaps the value to the nearest allowed value.
func OneOf(allowed ...float64) Option {
	return func(r *numberRule) {
		r.allowed = allowed
	}
}

// Has reports whether field carries a non-blank value.
func (p *Parser) Has(field string) bool {
	_, ok := p.values.Get(field)
	return ok
}

// Float returns the field as a float64, or def when the field is absent.
func (p *Parser) Float(field string, def float64, opts ...Option) float64 {
	raw, ok := p.values.Get(field)
	if !ok {
		return def
	}
	return p.number(field, raw, opts)
}

// RequiredFloat is Float for a field that must be present.
func (p *Parser) RequiredFloat(field string, opts ...Option) float64 {
	raw, ok := p.values.Get(field)
	if !ok {
		p.missing(field)
		return 0
	}
	return p.number(field, raw, opts)
}

// Int returns the field as a whole number, or def when absent.
func (p *Parser) Int(field string, def int, opts ...Option) int {
	raw, ok := p.values.Get(field)
	if !ok {
		return def
	}
	return p.integer(field, raw, opts)
}

func (p *Parser) RequiredInt(field string, opts ...Option) int {
	raw, ok := p.values.Get(field)
	if !ok {
		p.missing(field)
		return 0
	}
	return p.integer(field, raw, opts)
}

// Bool accepts true/false, 1/0, yes/no and on/off.
func (p *Parser) Bool(field string, def bool) bool {
	raw, ok := p.values.Get(field)
	if !ok {
		return def
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	p.errs = append(p.errs, Errorf(field, CodeInvalidValue, "%q is not a boolean", raw))
	return def
}

// String returns the trimmed text of field, or def when absent.
func (p *Parser) String(field, def string) string {
	raw, ok := p.values.Get(field)
	if !ok {
		return def
	}
	return raw
}

func (p *Parser) RequiredString(field string) string {
	raw, ok := p.values.Get(field)
	if !ok {
		p.missing(field)
	}
	return raw
}

// Choice returns one of allowed (case-insensitive). An empty def makes the
// field required.
func (p *Parser) Choice(field, def string, allowed ...string) string {
	raw, ok := p.values.Get(field)
	if !ok {
		if def == "" {
			p.missing(field)
		}
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(raw, a) {
			return a
		}
	}
	p.errs = append(p.errs, Errorf(field, CodeInvalidChoice, "must be one of %s", strings.Join(allowed, ", ")))
	return def
}

// Date returns the field parsed as YYYY-MM-DD. ok is false when the field is
// absent or invalid.
func (p *Parser) Date(field string) (time.Time, bool) {
	raw, present := p.values.Get(field)
	if !present {
		return time.Time{}, false
	}
	t, ok := ParseDate(raw)
	if !ok {
		p.errs = append(p.errs, Errorf(field, CodeInvalidDate, "%q is not a valid YYYY-MM-DD date", raw))
		return time.Time{}, false
	}
	return t, true
}

func (p *Parser) RequiredDate(field string) time.Time {
	if !p.Has(field) {
		p.missing(field)
		return time.Time{}
	}
	t, _ := p.Date(field)
	return t
}

// Clock returns a duration in seconds written as h:mm:ss, m:ss or plain
// seconds. Absent optional fields return 0.
func (p *Parser) Clock(field string, required bool) float64 {
	raw, ok := p.values.Get(field)
	if !ok {
		if required {
			p.missing(field)
		}
		return 0
	}
	secs, ok := parseClock(raw)
	if !ok {
		p.errs = append(p.errs, Errorf(field, CodeInvalidDuration, "%q is not a valid h:mm:ss duration", raw))
		return 0
	}
	return secs
}

// Check records a failure when ok is false.
func (p *Parser) Check(ok bool, field, code, message string) {
	if !ok {
		p.Fail(field, code, message)
	}
}

func (p *Parser) Fail(field, code, message string) {
	p.errs = append(p.errs, &FieldError{Field: field, Code: code, Message: message})
}

// Err returns a *ValidationError when any field was rejected.
func (p *Parser) Err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: p.errs}
}

// Adjustments lists values that were clamped into range.
func (p *Parser) Adjustments() []Adjustment {
	return p.adjustments
}

func (p *Parser) missing(field string) {
	p.errs = append(p.errs, &FieldError{Field: field, Code: CodeMissingField, Message: "is required"})
}

func (p *Parser) number(field, raw string, opts []Option) float64 {
	f, ok := ParseNumber(raw)
	if !ok {
		p.errs = append(p.errs, Errorf(field, CodeInvalidNumber, "%q is not a number", raw))
		return 0
	}
	return p.constrain(field, f, opts)
}

func (p *Parser) integer(field, raw string, opts []Option) int {
	f, ok := ParseNumber(raw)
	if !ok {
		p.errs = append(p.errs, Errorf(field, CodeInvalidNumber, "%q is not a number", raw))
		return 0
	}
	if f != math.Trunc(f) {
		p.errs = append(p.errs, Errorf(field, CodeInvalidNumber, "%q is not a whole number", raw))
		return 0
	}
	return int(p.constrain(field, f, opts))
}

func (p *Parser) constrain(field string, f float64, opts []Option) float64 {
	var rule numberRule
	for _, opt := range opts {
		opt(&rule)
	}
	v := f
	if rule.hasRange {
		v = math.Min(math.Max(v, rule.min), rule.max)
	}
	if len(rule.allowed) > 0 {
		best := rule.allowed[0]
		for _, a := range rule.allowed[1:] {
			if math.Abs(a-v) < math.Abs(best-v) {
				best = a
			}
		}
		v = best
	}
	if v != f {
		p.adjustments = append(p.adjustments, Adjustment{Field: field, From: f, To: v})
	}
	return v
}

// ParseNumber parses user-typed numbers, tolerating thousands separators,
// currency and percent signs. NaN and infinities are rejected.
func ParseNumber(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', '%', '_', ' ':
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate parses "YYYY-MM-DD" without going through time.Parse layout
// handling. Impossible days such as Feb 30 are rejected.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func parseClock(raw string) (float64, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) == 1 {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	if len(parts) > 3 {
		return 0, false
	}
	var total float64
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, false
		}
		if i > 0 && n > 59 {
			return 0, false
		}
		total = total*60 + float64(n)
	}
	return total, true
}
