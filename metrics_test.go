package weeklyperf

import (
	"math"
	"testing"

	"github.com/vbessa/weeklyperf/date"
)

// fill populates a weekday series starting on 2025-01-02 (a Thursday).
func fill(m *ReturnMatrix, key string, rs ...float64) {
	cal := WeekdayCalendar()
	d := date.MustParse("2025-01-02")
	for _, r := range rs {
		m.Set(key, d, r)
		d = d.Add(1)
		for !cal.IsBusinessDay(d) {
			d = d.Add(1)
		}
	}
}

// wholeYear is a window wide enough to contain every test series.
func wholeYear() date.Range {
	return date.NewRange(date.MustParse("2025-01-01"), date.MustParse("2025-12-31"))
}

func find(rows []Row, key string) (Row, bool) {
	for _, r := range rows {
		if r.Instrument == key {
			return r, true
		}
	}
	return Row{}, false
}

func TestComputeAccumulated(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "FUND", 0.01, -0.02, 0.03)

	rows := Compute(m, wholeYear(), "")
	row, ok := find(rows, "FUND")
	if !ok {
		t.Fatal("FUND missing from result")
	}
	want := 1.01*0.98*1.03 - 1
	if math.Abs(row.Return-want) > 1e-12 {
		t.Errorf("Return=%v want %v", row.Return, want)
	}
}

func TestComputeZeroReturnInvariance(t *testing.T) {
	a := NewReturnMatrix()
	fill(a, "FUND", 0.01, -0.02, 0.03)
	b := NewReturnMatrix()
	fill(b, "FUND", 0.01, 0, -0.02, 0.03)

	ra, _ := find(Compute(a, wholeYear(), ""), "FUND")
	rb, _ := find(Compute(b, wholeYear(), ""), "FUND")
	if math.Abs(ra.Return-rb.Return) > 1e-12 {
		t.Errorf("a zero-return day changed the accumulated return: %v vs %v", ra.Return, rb.Return)
	}
}

func TestComputeMinimumTwoPoints(t *testing.T) {
	m := NewReturnMatrix()
	m.Set("LONE", date.MustParse("2025-01-02"), 0.01)
	fill(m, "FUND", 0.01, 0.02)

	rows := Compute(m, wholeYear(), "")
	if _, ok := find(rows, "LONE"); ok {
		t.Error("single-point instrument must be excluded from the window")
	}
	if _, ok := find(rows, "FUND"); !ok {
		t.Error("two-point instrument must be present")
	}
}

func TestComputeEmptyWindow(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "FUND", 0.01, 0.02)
	rows := Compute(m, date.NewRange(date.MustParse("2024-01-01"), date.MustParse("2024-12-31")), "")
	if len(rows) != 0 {
		t.Errorf("empty window must yield no rows, got %d", len(rows))
	}
}

func TestComputeVolatility(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "FUND", 0.01, -0.01, 0.01, -0.01)

	row, _ := find(Compute(m, wholeYear(), ""), "FUND")
	// sample std of {.01,-.01,.01,-.01} is sqrt(4/3)*0.01
	want := math.Sqrt(4.0/3.0) * 0.01 * math.Sqrt(252)
	if math.Abs(row.Volatility-want) > 1e-12 {
		t.Errorf("Volatility=%v want %v", row.Volatility, want)
	}
}

func TestComputeSharpe(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "FUND", 0.02, 0.00, 0.04)
	fill(m, "CDI", 0.01, 0.01, 0.01)

	rows := Compute(m, wholeYear(), "CDI")

	bench, _ := find(rows, "CDI")
	if bench.Sharpe != 0 {
		t.Errorf("benchmark Sharpe=%v want 0 by convention", bench.Sharpe)
	}

	fund, _ := find(rows, "FUND")
	// excess = {0.01, -0.01, 0.03}: mean 0.01, sample std 0.02
	want := 0.01 * 252 / (0.02 * math.Sqrt(252))
	if math.Abs(fund.Sharpe-want) > 1e-9 {
		t.Errorf("Sharpe=%v want %v", fund.Sharpe, want)
	}
}

func TestComputeSharpeZeroVariance(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "FUND", 0.02, 0.02, 0.02)
	fill(m, "CDI", 0.01, 0.01, 0.01)

	fund, _ := find(Compute(m, wholeYear(), "CDI"), "FUND")
	if fund.Sharpe != 0 {
		t.Errorf("constant excess must yield Sharpe 0, got %v", fund.Sharpe)
	}
}

func TestComputeSharpeNoBenchmark(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "FUND", 0.02, 0.00, 0.04)

	fund, _ := find(Compute(m, wholeYear(), "CDI"), "FUND")
	if fund.Sharpe != 0 {
		t.Errorf("absent benchmark must yield Sharpe 0, got %v", fund.Sharpe)
	}
}

func TestComputeMaxDrawdown(t *testing.T) {
	m := NewReturnMatrix()
	fill(m, "DOWN", 0.10, -0.50, 0.20)
	fill(m, "UP", 0.01, 0.02, 0.03)

	rows := Compute(m, wholeYear(), "")

	down, _ := find(rows, "DOWN")
	if math.Abs(down.MaxDrawdown-(-0.50)) > 1e-12 {
		t.Errorf("MaxDrawdown=%v want -0.50", down.MaxDrawdown)
	}
	if down.MaxDrawdown > 0 {
		t.Error("max drawdown must never be positive")
	}

	up, _ := find(rows, "UP")
	if up.MaxDrawdown != 0 {
		t.Errorf("non-decreasing index must have MaxDrawdown 0, got %v", up.MaxDrawdown)
	}
}

func TestComputeExclusiveStart(t *testing.T) {
	m := NewReturnMatrix()
	m.Set("FUND", date.MustParse("2025-01-02"), 0.50) // boundary day, excluded
	m.Set("FUND", date.MustParse("2025-01-03"), 0.01)
	m.Set("FUND", date.MustParse("2025-01-06"), 0.02)

	r := date.NewRange(date.MustParse("2025-01-02"), date.MustParse("2025-01-06"))
	row, _ := find(Compute(m, r, ""), "FUND")
	want := 1.01*1.02 - 1
	if math.Abs(row.Return-want) > 1e-12 {
		t.Errorf("Return=%v want %v: boundary day leaked into the window", row.Return, want)
	}
}
