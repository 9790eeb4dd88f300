package weeklyperf

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// SeriesKind is the inferred encoding of a raw daily series.
type SeriesKind int

const (
	// DecimalReturn values are already decimal daily returns (0.01 = 1%).
	// It is also the convention for an empty or all-missing series.
	DecimalReturn SeriesKind = iota
	// PercentReturn values are returns in percentage points (1.0 = 1%).
	PercentReturn
	// Level values are prices or index levels.
	Level
)

func (k SeriesKind) String() string {
	switch k {
	case DecimalReturn:
		return "decimal-return"
	case PercentReturn:
		return "percent-return"
	case Level:
		return "level"
	default:
		return fmt.Sprintf("SeriesKind(%d)", int(k))
	}
}

// ClassifierPolicy holds the thresholds of the series-kind heuristic.
//
// The heuristic looks at the median and 95th percentile of absolute values:
// a price series sits way above 10, a percentage-point return series
// typically has a median above 0.2 but stays under 50, and a decimal return
// series hugs zero. The reference values are deliberate policy constants:
// change them only with evidence from the live universe.
type ClassifierPolicy struct {
	LevelMedian   float64 // median above this is a price level
	LevelP95      float64 // p95 above this is a price level
	PercentMedian float64 // median above this (and p95 below LevelP95) is percentage points
}

// DefaultClassifierPolicy returns the reference thresholds.
func DefaultClassifierPolicy() ClassifierPolicy {
	return ClassifierPolicy{LevelMedian: 10, LevelP95: 50, PercentMedian: 0.2}
}

// Classify infers the encoding of a raw series. Missing values are ignored.
func (p ClassifierPolicy) Classify(values []float64) SeriesKind {
	abs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			abs = append(abs, math.Abs(v))
		}
	}
	if len(abs) == 0 {
		return DecimalReturn
	}
	sort.Float64s(abs)
	median := stat.Quantile(0.5, stat.LinInterp, abs, nil)
	p95 := stat.Quantile(0.95, stat.LinInterp, abs, nil)

	switch {
	case median > p.LevelMedian || p95 > p.LevelP95:
		return Level
	case median > p.PercentMedian && p95 <= p.LevelP95:
		return PercentReturn
	default:
		return DecimalReturn
	}
}

// ParseLocale parses a numeric token in Brazilian vendor format: "." as
// thousands separator and "," as decimal mark ("1.234,56" is 1234.56).
// Plain machine-formatted numbers ("1234.56") parse as well since they carry
// no comma and at most one period.
func ParseLocale(token string) (float64, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return math.NaN(), fmt.Errorf("empty token")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return math.NaN(), fmt.Errorf("cannot parse %q as a number: %w", token, err)
	}
	return d.InexactFloat64(), nil
}

// ToDecimalReturns converts a raw series to decimal daily returns per its
// inferred kind. The result is aligned with the input, missing values stay
// missing.
//
// A Level series yields the percentage change between consecutive valid
// points, so its first valid observation has no return. PercentReturn
// divides by 100, DecimalReturn passes through.
func ToDecimalReturns(values []float64, kind SeriesKind) []float64 {
	out := make([]float64, len(values))
	switch kind {
	case Level:
		prev := math.NaN()
		for i, v := range values {
			out[i] = math.NaN()
			if math.IsNaN(v) {
				continue
			}
			if !math.IsNaN(prev) && prev != 0 {
				out[i] = v/prev - 1
			}
			prev = v
		}
	case PercentReturn:
		for i, v := range values {
			out[i] = v / 100
		}
	default:
		copy(out, values)
	}
	return out
}

// Anomalous reports whether a daily return is outside [-100%, +100%].
// Such returns are flagged for review but never corrected.
func Anomalous(r float64) bool { return !math.IsNaN(r) && math.Abs(r) > 1 }
