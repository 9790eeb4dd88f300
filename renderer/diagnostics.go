package renderer

import (
	"fmt"
	"io"
	"sort"

	"github.com/vbessa/weeklyperf"
)

// RenderDiagnostics writes the data-quality section of a report. The whole
// section is skipped when the run produced nothing worth surfacing.
func RenderDiagnostics(w io.Writer, d *weeklyperf.Diagnostics) {
	if d == nil || d.Empty() {
		return
	}
	fmt.Fprint(w, "\n## Diagnostics\n\n")

	if d.DegradedCalendar {
		fmt.Fprintln(w, "- Holiday calendar unavailable: period boundaries use weekdays only.")
	}
	for _, id := range d.Uncategorized {
		fmt.Fprintf(w, "- %s is not in the universe, reported under %s.\n", id, weeklyperf.OtherCategory)
	}

	ConditionalBlock(w, func(bw io.Writer) bool {
		fmt.Fprintln(bw, "\n| Instrument | Unparseable values |")
		fmt.Fprintln(bw, "|:---|---:|")
		keys := make([]string, 0, len(d.ParseFailures))
		for k := range d.ParseFailures {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(bw, "| %s | %d |\n", k, d.ParseFailures[k])
		}
		return len(keys) > 0
	})

	ConditionalBlock(w, func(bw io.Writer) bool {
		fmt.Fprintln(bw, "\n| Instrument | Date | Suspicious return |")
		fmt.Fprintln(bw, "|:---|:---|---:|")
		for _, a := range d.Anomalies {
			fmt.Fprintf(bw, "| %s | %s | %s |\n", a.Instrument, a.Date,
				weeklyperf.Percent(100*a.Return).SignedString())
		}
		return len(d.Anomalies) > 0
	})
}
