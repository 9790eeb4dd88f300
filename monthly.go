package weeklyperf

import (
	"math"
	"time"
)

// MonthlyYear is one row of the monthly pivot: the instrument's accumulated
// return per calendar month, plus the year's accumulated return and the
// running inception-to-date accumulation through year end. Months without
// data are NaN.
type MonthlyYear struct {
	Year      int
	Months    [12]float64
	YTD       float64
	Inception float64
}

// MonthlyReturns pivots an instrument's daily returns into year rows, in
// ascending year order. Compounding skips missing months: the inception
// column carries the running product across years so a sparse series still
// accumulates correctly.
func MonthlyReturns(m *ReturnMatrix, instrument string) []MonthlyYear {
	h := m.Series(instrument)
	if h == nil || h.Len() == 0 {
		return nil
	}

	// Compound each (year, month) bucket in one chronological pass.
	type bucket struct {
		year  int
		month time.Month
	}
	factors := make(map[bucket]float64)
	var order []bucket
	for on, r := range h.Values() {
		b := bucket{on.Year(), on.Month()}
		if _, ok := factors[b]; !ok {
			factors[b] = 1
			order = append(order, b)
		}
		factors[b] *= 1 + r
	}

	firstYear, lastYear := order[0].year, order[len(order)-1].year
	var out []MonthlyYear
	inception := 1.0
	for year := firstYear; year <= lastYear; year++ {
		row := MonthlyYear{Year: year}
		ytd := 1.0
		for mo := time.January; mo <= time.December; mo++ {
			f, ok := factors[bucket{year, mo}]
			if !ok {
				row.Months[mo-1] = math.NaN()
				continue
			}
			row.Months[mo-1] = f - 1
			ytd *= f
			inception *= f
		}
		row.YTD = ytd - 1
		row.Inception = inception - 1
		out = append(out, row)
	}
	return out
}
