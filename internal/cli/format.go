// Package cli renders calculation responses for the terminal.
package cli

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatValue formats a decoded JSON value for a table cell. Whole numbers
// get separators, fractions two decimals.
// e.g., 1227.8934 -> "1,227.89", 2024 -> "2,024", true -> "yes"
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case float64:
		return formatFloat(x)
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ", ")
	default:
		return "?"
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return FormatNumber(int64(f))
	}
	rounded := math.Round(f*100) / 100
	whole := math.Trunc(rounded)
	frac := strconv.FormatFloat(math.Abs(rounded-whole), 'f', 2, 64)
	sign := ""
	if rounded < 0 && whole == 0 {
		sign = "-"
	}
	return sign + FormatNumber(int64(whole)) + frac[1:]
}

// Humanize turns a JSON key into a column label.
// e.g., "final_balance" -> "Final Balance", "traditional.net_balance" ->
// "Traditional Net Balance"
func Humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '.' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
