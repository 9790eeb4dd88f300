package weeklyperf

import (
	"fmt"
	"math"

	"github.com/vbessa/weeklyperf/date"
)

// RawFrame is the contract between a data provider and the core: an ordered
// date column plus one textual column per instrument. Values stay raw
// vendor tokens (locale-formatted text or plain numbers), numeric
// interpretation belongs to the normalizer.
type RawFrame struct {
	Source  string              `json:"source"`
	Dates   []date.Date         `json:"dates"`
	Order   []string            `json:"order"`
	Columns map[string][]string `json:"columns"`
}

// NewRawFrame returns an empty frame for the given source name.
func NewRawFrame(source string, dates []date.Date) *RawFrame {
	return &RawFrame{Source: source, Dates: dates, Columns: make(map[string][]string)}
}

// AddColumn appends an instrument column. Values must align with the frame's
// date column.
func (f *RawFrame) AddColumn(name string, values []string) error {
	if len(values) != len(f.Dates) {
		return fmt.Errorf("column %q has %d values for %d dates", name, len(values), len(f.Dates))
	}
	if _, dup := f.Columns[name]; dup {
		return fmt.Errorf("duplicate column %q", name)
	}
	f.Order = append(f.Order, name)
	f.Columns[name] = values
	return nil
}

// Rename rewrites column keys through the universe's vendor-name mapping.
func (f *RawFrame) Rename(u *Universe) {
	for i, name := range f.Order {
		id := u.Rename(name)
		if id == name {
			continue
		}
		f.Order[i] = id
		f.Columns[id] = f.Columns[name]
		delete(f.Columns, name)
	}
}

// Normalize converts the frame into decimal daily returns: parse each token,
// infer the column's encoding, convert, and record every degradation in
// diag. Unparseable tokens become missing values, anomalous returns are
// flagged and kept.
func (f *RawFrame) Normalize(policy ClassifierPolicy, diag *Diagnostics) *ReturnMatrix {
	m := NewReturnMatrix()
	for _, name := range f.Order {
		raw := f.Columns[name]
		values := make([]float64, len(raw))
		for i, token := range raw {
			v, err := ParseLocale(token)
			if err != nil && token != "" {
				// an empty token is a plain gap, not a vendor glitch
				diag.CountParseFailure(name)
			}
			values[i] = v
		}

		kind := policy.Classify(values)
		diag.Kinds[name] = kind

		returns := ToDecimalReturns(values, kind)
		for i, r := range returns {
			if math.IsNaN(r) {
				continue
			}
			if Anomalous(r) {
				diag.Anomalies = append(diag.Anomalies, Anomaly{Instrument: name, Date: f.Dates[i], Return: r})
			}
			m.Set(name, f.Dates[i], r)
		}
	}
	return m
}

// BuildMatrix normalizes every frame, outer-joins them on the date column
// and zero-fills the calendar gaps between sources after each series'
// inception.
func BuildMatrix(policy ClassifierPolicy, diag *Diagnostics, frames ...*RawFrame) *ReturnMatrix {
	m := NewReturnMatrix()
	for _, f := range frames {
		m.Merge(f.Normalize(policy, diag))
	}
	m.Align()
	return m
}
