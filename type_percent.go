package weeklyperf

import (
	"fmt"
	"math"
)

// Percent is a percentage value: Percent(1.5) renders as "1.50%".
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsNaN reports whether the value is missing.
func (p Percent) IsNaN() bool { return math.IsNaN(float64(p)) }

func (p Percent) String() string {
	if p.IsNaN() {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	if p.IsNaN() {
		return "-"
	}
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
