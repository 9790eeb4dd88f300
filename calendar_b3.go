package weeklyperf

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vbessa/weeklyperf/date"
)

// The embedded table lists B3 trading holidays (the ANBIMA national
// holidays plus the exchange's year-end closures). It is the primary
// calendar; callers that fail to load a replacement table fall back to
// WeekdayCalendar.

//go:embed b3_holidays.json
var b3Holidays []byte

// calendarFile is the JSON document a holiday table is decoded from.
type calendarFile struct {
	Name     string      `json:"name"`
	Holidays []date.Date `json:"holidays"`
}

// B3 returns the calendar backed by the embedded B3 holiday table.
func B3() *Calendar {
	cal, err := decodeCalendar(b3Holidays)
	if err != nil {
		// The embedded table is validated by tests, decoding cannot fail at
		// runtime. Degrade anyway rather than panic.
		return WeekdayCalendar()
	}
	return cal
}

// LoadCalendar reads a holiday table from a JSON file.
func LoadCalendar(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read calendar file %q: %w", path, err)
	}
	cal, err := decodeCalendar(data)
	if err != nil {
		return nil, fmt.Errorf("cannot decode calendar file %q: %w", path, err)
	}
	return cal, nil
}

func decodeCalendar(data []byte) (*Calendar, error) {
	var f calendarFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Name == "" {
		return nil, fmt.Errorf("calendar has no name")
	}
	return NewCalendar(f.Name, f.Holidays), nil
}
