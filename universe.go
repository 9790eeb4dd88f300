package weeklyperf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vbessa/weeklyperf/date"
)

// OtherCategory labels instruments that match no configured category. An
// instrument landing there is a renaming or configuration mismatch and is
// flagged in the diagnostics, it is never dropped from the report.
const OtherCategory = "Other"

// Instrument describes one reported series.
type Instrument struct {
	ID       string `json:"id"`       // column key in the return matrix
	Name     string `json:"name"`     // display name
	Category string `json:"category"` // grouping in the report
	Flagship bool   `json:"flagship,omitempty"`
}

// Universe is the static configuration of the report: the ordered instrument
// list, the benchmark, per-category inception dates, and the vendor-name
// renames applied at ingestion.
type Universe struct {
	Instruments []Instrument         `json:"instruments"`
	Benchmark   string               `json:"benchmark"`
	Inceptions  map[string]date.Date `json:"inceptions,omitempty"` // category -> inception
	Renames     map[string]string    `json:"renames,omitempty"`    // vendor identifier -> ID
}

// DecodeUniverse reads a universe from its JSON form.
func DecodeUniverse(r io.Reader) (*Universe, error) {
	u := new(Universe)
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(u); err != nil {
		return nil, fmt.Errorf("cannot decode universe: %w", err)
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// LoadUniverse reads a universe from a JSON file.
func LoadUniverse(path string) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open universe file %q: %w", path, err)
	}
	defer f.Close()
	u, err := DecodeUniverse(f)
	if err != nil {
		return nil, fmt.Errorf("in universe file %q: %w", path, err)
	}
	return u, nil
}

// EncodeUniverse writes the universe in its canonical JSON form.
func EncodeUniverse(w io.Writer, u *Universe) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(u)
}

func (u *Universe) validate() error {
	seen := make(map[string]bool, len(u.Instruments))
	for _, ins := range u.Instruments {
		if ins.ID == "" {
			return fmt.Errorf("instrument with empty id")
		}
		if seen[ins.ID] {
			return fmt.Errorf("duplicate instrument %q", ins.ID)
		}
		seen[ins.ID] = true
	}
	if u.Benchmark != "" && !seen[u.Benchmark] {
		return fmt.Errorf("benchmark %q is not a declared instrument", u.Benchmark)
	}
	return nil
}

// Lookup returns the declared instrument for an ID.
func (u *Universe) Lookup(id string) (Instrument, bool) {
	for _, ins := range u.Instruments {
		if ins.ID == id {
			return ins, true
		}
	}
	return Instrument{}, false
}

// Rename maps a vendor identifier to the configured instrument ID, or
// returns it unchanged.
func (u *Universe) Rename(vendor string) string {
	if id, ok := u.Renames[vendor]; ok {
		return id
	}
	return vendor
}

// Categories returns the category names in first-appearance order.
func (u *Universe) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, ins := range u.Instruments {
		if ins.Category != "" && !seen[ins.Category] {
			seen[ins.Category] = true
			out = append(out, ins.Category)
		}
	}
	return out
}

// Inception returns the fixed inception date of a category, when configured.
func (u *Universe) Inception(category string) (date.Date, bool) {
	d, ok := u.Inceptions[category]
	return d, ok
}
