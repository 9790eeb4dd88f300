package weeklyperf

import (
	"math"
	"slices"

	"github.com/vbessa/weeklyperf/date"
)

// ReturnMatrix is the aligned daily-return table: one series of decimal
// daily returns per instrument, keyed by date.
//
// Invariants: dates within a series are unique and ascending (enforced by
// date.History), and a series holds no value before its first observation.
// That inception boundary is immutable: Align fills gaps with zero returns
// only after it.
type ReturnMatrix struct {
	order  []string
	series map[string]*date.History[float64]
}

// NewReturnMatrix returns an empty matrix.
func NewReturnMatrix() *ReturnMatrix {
	return &ReturnMatrix{series: make(map[string]*date.History[float64])}
}

// Set records the daily return of an instrument. Missing values (NaN) are
// not recorded, they are the absence of a point.
func (m *ReturnMatrix) Set(instrument string, on date.Date, r float64) {
	if math.IsNaN(r) {
		return
	}
	h, ok := m.series[instrument]
	if !ok {
		h = new(date.History[float64])
		m.series[instrument] = h
		m.order = append(m.order, instrument)
	}
	h.Append(on, r)
}

// Instruments returns the instrument keys in insertion order.
func (m *ReturnMatrix) Instruments() []string { return slices.Clone(m.order) }

// Has reports whether the matrix holds a series for the instrument.
func (m *ReturnMatrix) Has(instrument string) bool {
	h, ok := m.series[instrument]
	return ok && h.Len() > 0
}

// Series returns the return history of an instrument, or nil.
func (m *ReturnMatrix) Series(instrument string) *date.History[float64] {
	return m.series[instrument]
}

// Dates returns the sorted union of all observation dates.
func (m *ReturnMatrix) Dates() []date.Date {
	hs := make([]date.History[float64], 0, len(m.order))
	for _, key := range m.order {
		hs = append(hs, *m.series[key])
	}
	var out []date.Date
	for d := range date.Iterate(hs...) {
		out = append(out, d)
	}
	return out
}

// LastDateOnOrBefore snaps a boundary to the latest observation date at or
// before day, across all instruments.
func (m *ReturnMatrix) LastDateOnOrBefore(day date.Date) (date.Date, bool) {
	var best date.Date
	found := false
	for _, h := range m.series {
		if d, ok := h.DayAsOf(day); ok && (!found || d.After(best)) {
			best, found = d, true
		}
	}
	return best, found
}

// LastDateInYear returns the latest observation date within the given
// calendar year.
func (m *ReturnMatrix) LastDateInYear(year int) (date.Date, bool) {
	d, ok := m.LastDateOnOrBefore(date.New(year, 12, 31))
	if !ok || d.Year() != year {
		return date.Date{}, false
	}
	return d, true
}

// LastDateInMonth returns the latest observation date within the given month.
func (m *ReturnMatrix) LastDateInMonth(of date.Date) (date.Date, bool) {
	end := date.New(of.Year(), of.Month()+1, 1).Add(-1)
	d, ok := m.LastDateOnOrBefore(end)
	if !ok || d.Year() != of.Year() || d.Month() != of.Month() {
		return date.Date{}, false
	}
	return d, true
}

// Merge outer-joins another matrix into this one. Series present in both
// keep the receiver's points on conflicting dates.
func (m *ReturnMatrix) Merge(other *ReturnMatrix) {
	for _, key := range other.order {
		for on, r := range other.series[key].Values() {
			if h, ok := m.series[key]; ok {
				if _, exists := h.Get(on); exists {
					continue
				}
			}
			m.Set(key, on, r)
		}
	}
}

// Align fills each series with zero returns on union dates it is missing,
// strictly after its own inception. A date traded on one exchange but not
// another is a no-change day for the absent series, not a gap.
func (m *ReturnMatrix) Align() {
	union := m.Dates()
	for _, key := range m.order {
		h := m.series[key]
		first, _ := h.Earliest()
		for _, on := range union {
			if !on.After(first) {
				continue
			}
			if _, ok := h.Get(on); !ok {
				h.Append(on, 0)
			}
		}
	}
}

// window returns the dates and returns of an instrument within r (exclusive
// start, inclusive end), in chronological order.
func (m *ReturnMatrix) window(instrument string, r date.Range) (days []date.Date, returns []float64) {
	h, ok := m.series[instrument]
	if !ok {
		return nil, nil
	}
	for on, v := range h.Values() {
		if r.Contains(on) {
			days = append(days, on)
			returns = append(returns, v)
		}
	}
	return days, returns
}

// Accumulated compounds the instrument's returns over r: product of (1+r)
// minus 1, NaN when the window holds no point.
func (m *ReturnMatrix) Accumulated(instrument string, r date.Range) float64 {
	_, rs := m.window(instrument, r)
	if len(rs) == 0 {
		return math.NaN()
	}
	acc := 1.0
	for _, v := range rs {
		acc *= 1 + v
	}
	return acc - 1
}

// CumulativeIndex builds the wealth index of an instrument over its whole
// history: the running product of (1+r) starting at 1 on inception.
func (m *ReturnMatrix) CumulativeIndex(instrument string) *date.History[float64] {
	out := new(date.History[float64])
	h, ok := m.series[instrument]
	if !ok {
		return out
	}
	acc := 1.0
	for on, v := range h.Values() {
		acc *= 1 + v
		out.Append(on, acc)
	}
	return out
}
