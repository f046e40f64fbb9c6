package mathcalc

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"calculator-engine/internal/form"
)

const (
	MaxRandomCount = 1000
	maxRandomBound = 1_000_000_000_000
)

// RandomInput draws Count integers from [Min, Max]. Draws are reproducible
// only when Seeded.
type RandomInput struct {
	Min    int
	Max    int
	Count  int
	Unique bool
	Sorted bool
	Seed   int64
	Seeded bool
}

func ParseRandom(p *form.Parser) RandomInput {
	var in RandomInput
	in.Min = p.RequiredInt("min", form.Range(-maxRandomBound, maxRandomBound))
	in.Max = p.RequiredInt("max", form.Range(-maxRandomBound, maxRandomBound))
	in.Count = p.Int("count", 1, form.Range(1, MaxRandomCount))
	in.Unique = p.Bool("unique", false)
	in.Sorted = p.Bool("sorted", false)
	if p.Has("seed") {
		in.Seed, in.Seeded = parseSeed(p)
	}
	return in
}

// parseSeed reads the seed as an exact 64-bit integer so large seeds are
// not rounded through float64.
func parseSeed(p *form.Parser) (int64, bool) {
	raw := strings.TrimSpace(p.String("seed", ""))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.Fail("seed", form.CodeInvalidNumber, "must be a whole number that fits in 64 bits")
		return 0, false
	}
	return n, true
}

func (in RandomInput) Query() form.Values {
	v := form.Values{}.
		SetInt("min", in.Min).
		SetInt("max", in.Max).
		SetInt("count", in.Count).
		SetBool("unique", in.Unique).
		SetBool("sorted", in.Sorted)
	if in.Seeded {
		v.SetString("seed", strconv.FormatInt(in.Seed, 10))
	}
	return v
}

// Deterministic reports whether repeated runs return the same draw.
func (in RandomInput) Deterministic() bool {
	return in.Seeded
}

type RandomResult struct {
	Numbers []int `json:"numbers"`
	Sum     int   `json:"sum"`
	Min     int   `json:"min"`
	Max     int   `json:"max"`
}

// CalculateRandom fails instead of returning a short or duplicated list when
// the range cannot satisfy the request.
func CalculateRandom(in RandomInput) (RandomResult, error) {
	if in.Min > in.Max {
		return RandomResult{}, form.Errorf("max", "INVALID_RANGE", "max (%d) must not be less than min (%d)", in.Max, in.Min)
	}
	span := in.Max - in.Min + 1
	if in.Unique && in.Count > span {
		return RandomResult{}, form.Errorf("count", "RANGE_TOO_SMALL",
			"cannot draw %d unique numbers from a range of %d", in.Count, span)
	}

	r := newRand(in)
	var nums []int
	if in.Unique {
		nums = drawUnique(r, in.Min, span, in.Count)
	} else {
		nums = make([]int, in.Count)
		for i := range nums {
			nums[i] = in.Min + int(r.Int64N(int64(span)))
		}
	}
	if in.Sorted {
		slices.Sort(nums)
	}

	res := RandomResult{Numbers: nums, Min: nums[0], Max: nums[0]}
	for _, n := range nums {
		res.Sum += n
		res.Min = min(res.Min, n)
		res.Max = max(res.Max, n)
	}
	return res, nil
}

func newRand(in RandomInput) *rand.Rand {
	if in.Seeded {
		seed := uint64(in.Seed)
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// drawUnique uses a partial Fisher-Yates shuffle for dense requests and
// rejection sampling otherwise.
func drawUnique(r *rand.Rand, lo, span, count int) []int {
	if count*2 >= span {
		pool := make([]int, span)
		for i := range pool {
			pool[i] = lo + i
		}
		for i := 0; i < count; i++ {
			j := i + int(r.Int64N(int64(span-i)))
			pool[i], pool[j] = pool[j], pool[i]
		}
		return pool[:count]
	}

	seen := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	for len(out) < count {
		n := lo + int(r.Int64N(int64(span)))
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
