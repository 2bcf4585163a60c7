package grading

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// NA marks a failed (or not applicable) partial or final grade.
const NA = "NA"

// DefaultPassMark is the minimum score for a partial or a final average to pass.
const DefaultPassMark = 70

var partialLabels = [3]string{"P1", "P2", "P3"}

// Normalizer applies the grade capture rules for a given pass mark.
type Normalizer struct {
	PassMark int
}

func NewNormalizer(passMark int) Normalizer {
	return Normalizer{PassMark: passMark}
}

var defaultNormalizer = NewNormalizer(DefaultPassMark)

// NormalizePartial normalizes one partial score with the default pass mark.
func NormalizePartial(raw string) string { return defaultNormalizer.Partial(raw) }

// Normalize normalizes a grade row with the default pass mark.
func Normalize(row Row) Row { return defaultNormalizer.Row(row) }

// Partial normalizes one captured partial score:
// blank stays blank, "NA" (any case) stays NA, numbers are clamped into [0, 100]
// and turned into NA when under the pass mark. Anything else is dropped.
func (n Normalizer) Partial(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.EqualFold(s, NA) {
		return NA
	}

	v, ok := parseScore(s)
	if !ok {
		return ""
	}
	if v < n.PassMark {
		return NA
	}
	return strconv.Itoa(v)
}

func isScoreChar(r rune) bool {
	return (r >= '0' && r <= '9') || strings.ContainsRune(".eE+-", r)
}

// parseScore parses a decimal score (integer, fractional or exponent form),
// clamps it into [0, 100] and rounds it half away from zero.
// Out of range values saturate before clamping.
func parseScore(s string) (int, bool) {
	if strings.IndexFunc(s, func(r rune) bool { return !isScoreChar(r) }) >= 0 {
		return 0, false // Inf, NaN, hex floats...
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	f = math.Max(0, math.Min(100, f))
	return int(math.Round(f)), true
}

// Row normalizes the three partials of `row` and recomputes its final and remedial fields.
// Client supplied final/remedial values are ignored.
//
//   - a blank partial leaves the final unset; the remedial lists the failed partials so far.
//   - any failed partial fails the final; the remedial lists the failed partials ("P1-P3").
//   - otherwise the final is the rounded mean of the partials and there is no remedial.
func (n Normalizer) Row(row Row) Row {
	partials := [3]string{n.Partial(row.Parcial1), n.Partial(row.Parcial2), n.Partial(row.Parcial3)}

	var failed []string
	var blank bool
	var sum int
	for i, p := range partials {
		switch p {
		case "":
			blank = true
		case NA:
			failed = append(failed, partialLabels[i])
		default:
			v, _ := strconv.Atoi(p)
			sum += v
		}
	}

	out := Row{
		ID:             row.ID,
		Parcial1:       partials[0],
		Parcial2:       partials[1],
		Parcial3:       partials[2],
		Extraordinario: strings.Join(failed, "-"),
	}
	switch {
	case blank:
	case len(failed) > 0:
		out.Final = NA
	default:
		// every partial passed, so the mean passes too
		out.Final = strconv.Itoa(int(math.Round(float64(sum) / 3)))
	}
	return out
}
