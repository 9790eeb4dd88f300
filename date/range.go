package date

import "fmt"

// Range represents a window of dates with an exclusive start and an inclusive
// end: a day d belongs to the range when From < d <= To.
//
// The asymmetry matters for daily returns: the return recorded on the start
// boundary economically belongs to the preceding window, so two adjacent
// ranges never double-count a day.
type Range struct{ From, To Date }

// NewRange returns the range (from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether day belongs to the range.
func (r Range) Contains(day Date) bool { return day.After(r.From) && !day.After(r.To) }

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Days returns the number of calendar days covered by the range.
func (r Range) Days() int { return int(r.To.time().Sub(r.From.time()) / Day) }

// String formats the range for display.
func (r Range) String() string { return fmt.Sprintf("(%s, %s]", r.From, r.To) }
