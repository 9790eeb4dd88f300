package weeklyperf

import (
	"github.com/vbessa/weeklyperf/date"
)

// Anomaly records a daily return outside [-100%, +100%]. It is surfaced,
// never corrected.
type Anomaly struct {
	Instrument string
	Date       date.Date
	Return     float64
}

// Diagnostics collects the data-quality signals of one report run. It is
// returned beside the result: every degradation shrinks the output and
// leaves a trace here instead of failing the computation.
type Diagnostics struct {
	// DegradedCalendar is set when period boundaries were derived from the
	// weekday-only fallback instead of the exchange holiday table.
	DegradedCalendar bool
	// ParseFailures counts unparseable tokens per instrument.
	ParseFailures map[string]int
	// Kinds records the inferred encoding per ingested series.
	Kinds map[string]SeriesKind
	// Anomalies lists the returns flagged by the magnitude check.
	Anomalies []Anomaly
	// Uncategorized lists instruments that fell into the Other category.
	Uncategorized []string
}

// NewDiagnostics returns an empty diagnostics collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		ParseFailures: make(map[string]int),
		Kinds:         make(map[string]SeriesKind),
	}
}

// CountParseFailure records one unparseable token for an instrument.
func (d *Diagnostics) CountParseFailure(instrument string) {
	d.ParseFailures[instrument]++
}

// Empty reports whether the run produced no signal worth surfacing.
func (d *Diagnostics) Empty() bool {
	return !d.DegradedCalendar &&
		len(d.ParseFailures) == 0 &&
		len(d.Anomalies) == 0 &&
		len(d.Uncategorized) == 0
}
