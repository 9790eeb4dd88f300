package renderer

import (
	"fmt"
	"io"

	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/date"
)

// pct renders one statistics cell as a signed percentage, "-" when the
// instrument had too little data in the window.
func pct(r *weeklyperf.Row, value func(*weeklyperf.Row) float64) string {
	if r == nil {
		return "-"
	}
	return weeklyperf.Percent(100 * value(r)).SignedString()
}

func ret(r *weeklyperf.Row) float64 { return r.Return }

// RenderWeekly writes the weekly performance report as markdown: the window
// header, one return table per category in universe order, and a risk table
// over the year-to-date window.
func RenderWeekly(w io.Writer, rep *weeklyperf.Report) {
	hasCustom := !rep.Boundaries.Custom.IsZero()
	hasITD := rep.Boundaries.Inceptions != nil

	fmt.Fprint(w, renderTemplate("weekly_header.md", struct {
		Reference date.Date
		AsOf      string
		Week      date.Range
		MTD       date.Range
		YTD       date.Range
		HasCustom bool
		Custom    date.Range
	}{
		Reference: rep.Reference,
		AsOf:      Now().Format("2006-01-02 15:04:05"),
		Week:      rep.Boundaries.Week,
		MTD:       rep.Boundaries.MTD,
		YTD:       rep.Boundaries.YTD,
		HasCustom: hasCustom,
		Custom:    rep.Boundaries.Custom,
	}))
	fmt.Fprintln(w)

	for _, category := range categories(rep) {
		fmt.Fprintf(w, "\n## %s\n\n", category)

		fmt.Fprint(w, "| Instrument | Week | MTD | YTD |")
		if hasCustom {
			fmt.Fprint(w, " Custom |")
		}
		if hasITD {
			fmt.Fprint(w, " ITD |")
		}
		fmt.Fprintln(w)

		fmt.Fprint(w, "|:---|---:|---:|---:|")
		if hasCustom {
			fmt.Fprint(w, "---:|")
		}
		if hasITD {
			fmt.Fprint(w, "---:|")
		}
		fmt.Fprintln(w)

		for _, row := range rep.Rows {
			if rowCategory(row) != category {
				continue
			}
			name := row.Instrument.Name
			if row.Instrument.Flagship {
				name = "**" + name + "**"
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |", name,
				pct(row.Week, ret), pct(row.MTD, ret), pct(row.YTD, ret))
			if hasCustom {
				fmt.Fprintf(w, " %s |", pct(row.Custom, ret))
			}
			if hasITD {
				fmt.Fprintf(w, " %s |", pct(row.ITD, ret))
			}
			fmt.Fprintln(w)
		}
	}

	renderRisk(w, rep)
}

// renderRisk writes the annualized risk statistics over the year-to-date
// window. Instruments without a year-to-date cell are left out entirely.
func renderRisk(w io.Writer, rep *weeklyperf.Report) {
	ConditionalBlock(w, func(bw io.Writer) bool {
		fmt.Fprint(bw, "\n## Risk (YTD)\n\n")
		fmt.Fprintln(bw, "| Instrument | Volatility | Sharpe | Max Drawdown |")
		fmt.Fprintln(bw, "|:---|---:|---:|---:|")
		printed := false
		for _, row := range rep.Rows {
			if row.YTD == nil {
				continue
			}
			printed = true
			sharpe := "-"
			if row.Instrument.ID != rep.Benchmark {
				sharpe = fmt.Sprintf("%.2f", row.YTD.Sharpe)
			}
			fmt.Fprintf(bw, "| %s | %s | %s | %s |\n",
				row.Instrument.Name,
				weeklyperf.Percent(100*row.YTD.Volatility).String(),
				sharpe,
				weeklyperf.Percent(100*row.YTD.MaxDrawdown).SignedString(),
			)
		}
		return printed
	})
}

// categories returns the category names of the report rows in first
// appearance order. Rows come out of the orchestrator already sorted, so
// this is the universe order followed by Other.
func categories(rep *weeklyperf.Report) []string {
	var out []string
	seen := make(map[string]bool)
	for _, row := range rep.Rows {
		c := rowCategory(row)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func rowCategory(row weeklyperf.ReportRow) string {
	if row.Instrument.Category == "" {
		return weeklyperf.OtherCategory
	}
	return row.Instrument.Category
}
