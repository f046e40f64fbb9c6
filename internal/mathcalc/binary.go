// Package mathcalc holds the number-base, statistics and random number
// calculators.
package mathcalc

import (
	"math/big"
	"strconv"
	"strings"

	"calculator-engine/internal/form"
)

var basePrefixes = map[int]string{2: "0b", 8: "0o", 16: "0x"}

// BinaryInput converts an integer written in FromBase.
type BinaryInput struct {
	Value    string
	FromBase int
}

func ParseBinary(p *form.Parser) BinaryInput {
	var in BinaryInput
	base := p.Choice("from_base", "10", "2", "8", "10", "16")
	in.FromBase, _ = strconv.Atoi(base)
	raw := p.RequiredString("value")
	if raw == "" {
		return in
	}
	in.Value = normalizeDigits(raw, in.FromBase)
	if _, ok := new(big.Int).SetString(in.Value, in.FromBase); !ok {
		p.Fail("value", "INVALID_DIGITS", "is not a valid base "+base+" integer")
	}
	return in
}

func (in BinaryInput) Query() form.Values {
	return form.Values{}.
		SetString("value", in.Value).
		SetInt("from_base", in.FromBase)
}

type BinaryResult struct {
	Binary        string `json:"binary"`
	BinaryGrouped string `json:"binary_grouped"`
	Octal         string `json:"octal"`
	Decimal       string `json:"decimal"`
	Hexadecimal   string `json:"hexadecimal"`
	BitLength     int    `json:"bit_length"`
	Negative      bool   `json:"negative"`
}

func CalculateBinary(in BinaryInput) (BinaryResult, error) {
	n, ok := new(big.Int).SetString(in.Value, in.FromBase)
	if !ok {
		return BinaryResult{}, form.Errorf("value", "INVALID_DIGITS", "is not a valid base %d integer", in.FromBase)
	}
	bin := n.Text(2)
	return BinaryResult{
		Binary:        bin,
		BinaryGrouped: groupBits(bin),
		Octal:         n.Text(8),
		Decimal:       n.Text(10),
		Hexadecimal:   strings.ToUpper(n.Text(16)),
		BitLength:     n.BitLen(),
		Negative:      n.Sign() < 0,
	}, nil
}

// normalizeDigits strips separators and a base prefix and lowercases.
func normalizeDigits(raw string, base int) string {
	s := strings.ToLower(raw)
	s = strings.NewReplacer(" ", "", "_", "", ",", "").Replace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if prefix, ok := basePrefixes[base]; ok {
		s = strings.TrimPrefix(s, prefix)
	}
	if neg {
		return "-" + s
	}
	return s
}

// groupBits splits a binary string into nibbles from the right.
func groupBits(bin string) string {
	sign := ""
	if strings.HasPrefix(bin, "-") {
		sign, bin = "-", bin[1:]
	}
	if len(bin) <= 4 {
		return sign + bin
	}
	var b strings.Builder
	head := len(bin) % 4
	if head > 0 {
		b.WriteString(bin[:head])
	}
	for i := head; i < len(bin); i += 4 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(bin[i : i+4])
	}
	return sign + b.String()
}
