package renderer

import (
	"fmt"
	"io"

	"github.com/vbessa/weeklyperf"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// RenderMonthly writes the monthly return pivot of one instrument: one row
// per year, one column per month, plus the year and inception accumulations.
func RenderMonthly(w io.Writer, name string, years []weeklyperf.MonthlyYear) {
	fmt.Fprint(w, renderTemplate("monthly_header.md", struct {
		Name string
		AsOf string
	}{
		Name: name,
		AsOf: Now().Format("2006-01-02 15:04:05"),
	}))
	fmt.Fprintln(w)

	if len(years) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}

	fmt.Fprint(w, "| Year |")
	for _, m := range monthNames {
		fmt.Fprintf(w, " %s |", m)
	}
	fmt.Fprintln(w, " YTD | Inception |")

	fmt.Fprint(w, "|:---|")
	for range monthNames {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w, "---:|---:|")

	for _, y := range years {
		fmt.Fprintf(w, "| %d |", y.Year)
		for _, r := range y.Months {
			fmt.Fprintf(w, " %s |", weeklyperf.Percent(100*r).SignedString())
		}
		fmt.Fprintf(w, " %s | %s |\n",
			weeklyperf.Percent(100*y.YTD).SignedString(),
			weeklyperf.Percent(100*y.Inception).SignedString())
	}
}
