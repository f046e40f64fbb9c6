package lifestyle

import (
	"strings"
	"time"
	"unicode"

	"calculator-engine/internal/form"
)

var masterNumbers = map[int]bool{11: true, 22: true, 33: true}

// meanings is the fixed keyword table for each core number.
var meanings = map[int]string{
	1:  "Leader: independent, driven and original",
	2:  "Peacemaker: cooperative, diplomatic and sensitive",
	3:  "Communicator: creative, expressive and social",
	4:  "Builder: practical, disciplined and reliable",
	5:  "Adventurer: curious, adaptable and free-spirited",
	6:  "Nurturer: responsible, caring and protective",
	7:  "Seeker: analytical, introspective and spiritual",
	8:  "Achiever: ambitious, authoritative and material",
	9:  "Humanitarian: compassionate, generous and idealistic",
	11: "Master Intuitive: inspired, visionary and perceptive",
	22: "Master Builder: turns large visions into reality",
	33: "Master Teacher: selfless guidance and uplifting others",
}

type NumerologyInput struct {
	BirthDate time.Time
	FullName  string
}

func ParseNumerology(p *form.Parser) NumerologyInput {
	var in NumerologyInput
	in.BirthDate = p.RequiredDate("birth_date")
	in.FullName = strings.Join(strings.Fields(p.String("full_name", "")), " ")
	if in.FullName != "" {
		p.Check(strings.IndexFunc(in.FullName, isLatinLetter) >= 0,
			"full_name", form.CodeInvalidValue, "must contain at least one letter")
	}
	return in
}

func (in NumerologyInput) Query() form.Values {
	v := form.Values{}.SetDate("birth_date", in.BirthDate)
	if in.FullName != "" {
		v.SetString("full_name", in.FullName)
	}
	return v
}

type NumberReading struct {
	Number  int    `json:"number"`
	Master  bool   `json:"master"`
	Meaning string `json:"meaning"`
}

type NumerologyResult struct {
	LifePath    NumberReading  `json:"life_path"`
	Expression  *NumberReading `json:"expression,omitempty"`
	SoulUrge    *NumberReading `json:"soul_urge,omitempty"`
	Personality *NumberReading `json:"personality,omitempty"`
}

func CalculateNumerology(in NumerologyInput) NumerologyResult {
	res := NumerologyResult{LifePath: reading(LifePath(in.BirthDate))}
	if in.FullName == "" {
		return res
	}
	all, vowels, consonants := nameSums(in.FullName)
	res.Expression = nameReading(all)
	res.SoulUrge = nameReading(vowels)
	res.Personality = nameReading(consonants)
	return res
}

// LifePath reduces month, day and year separately before reducing their sum.
func LifePath(d time.Time) int {
	return Reduce(Reduce(int(d.Month())) + Reduce(d.Day()) + Reduce(d.Year()))
}

// Reduce sums digits until a single digit or master number remains.
func Reduce(n int) int {
	for n > 9 && !masterNumbers[n] {
		sum := 0
		for ; n > 0; n /= 10 {
			sum += n % 10
		}
		n = sum
	}
	return n
}

// LetterValue maps A-Z onto 1-9 in the Pythagorean cycle; other runes are 0.
func LetterValue(r rune) int {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return 0
	}
	return int(r-'A')%9 + 1
}

func nameSums(name string) (all, vowels, consonants int) {
	for _, r := range name {
		v := LetterValue(r)
		if v == 0 {
			continue
		}
		all += v
		if strings.ContainsRune("AEIOU", unicode.ToUpper(r)) {
			vowels += v
		} else {
			consonants += v
		}
	}
	return all, vowels, consonants
}

func reading(n int) NumberReading {
	return NumberReading{Number: n, Master: masterNumbers[n], Meaning: meanings[n]}
}

// nameReading is nil when no letter of the name contributed to sum, such as
// the soul urge of a name without vowels.
func nameReading(sum int) *NumberReading {
	if sum == 0 {
		return nil
	}
	r := reading(Reduce(sum))
	return &r
}

func isLatinLetter(r rune) bool {
	return LetterValue(r) > 0
}
