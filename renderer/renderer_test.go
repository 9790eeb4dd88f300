package renderer

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/date"
)

func pinNow(t *testing.T) {
	t.Helper()
	t.Setenv("WEEKLYPERF_TESTING_NOW", "2025-08-20 18:00:00")
}

func sampleReport() *weeklyperf.Report {
	row := func(id string, r float64) *weeklyperf.Row {
		return &weeklyperf.Row{Instrument: id, Return: r, Volatility: 0.12, Sharpe: 1.5, MaxDrawdown: -0.03}
	}
	return &weeklyperf.Report{
		Reference: date.New(2025, 8, 20),
		Benchmark: "CDI",
		Boundaries: weeklyperf.Boundaries{
			Week: date.NewRange(date.New(2025, 8, 8), date.New(2025, 8, 15)),
			MTD:  date.NewRange(date.New(2025, 7, 31), date.New(2025, 8, 20)),
			YTD:  date.NewRange(date.New(2024, 12, 30), date.New(2025, 8, 20)),
		},
		Rows: []weeklyperf.ReportRow{
			{
				Instrument: weeklyperf.Instrument{ID: "CART-A", Name: "Carteira A", Category: "Carteiras", Flagship: true},
				Week:       row("CART-A", 0.0123),
				MTD:        row("CART-A", 0.02),
				YTD:        row("CART-A", 0.085),
			},
			{
				Instrument: weeklyperf.Instrument{ID: "FUND", Name: "Fundo X", Category: "Fundos"},
				Week:       row("FUND", -0.004),
				// MTD and YTD nil: too little data, cell renders as "-".
			},
			{
				Instrument: weeklyperf.Instrument{ID: "CDI", Name: "CDI", Category: "Benchmarks"},
				Week:       row("CDI", 0.002),
				YTD:        row("CDI", 0.07),
			},
		},
		Diagnostics: weeklyperf.NewDiagnostics(),
	}
}

func TestRenderWeekly(t *testing.T) {
	pinNow(t)
	var b bytes.Buffer
	RenderWeekly(&b, sampleReport())
	out := b.String()

	for _, want := range []string{
		"# Weekly Performance Report on 2025-08-20",
		"*As of 2025-08-20 18:00:00*",
		"| Week | 2025-08-08 | 2025-08-15 |",
		"## Carteiras",
		"## Fundos",
		"## Benchmarks",
		"| **Carteira A** | +1.23% | +2.00% | +8.50% |",
		"| Fundo X | -0.40% | - | - |",
		"## Risk (YTD)",
		"| Carteira A | 12.00% | 1.50 | -3.00% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	// No custom window was requested, so no Custom column.
	if strings.Contains(out, "Custom") {
		t.Errorf("unexpected Custom column in:\n%s", out)
	}
	// The benchmark's Sharpe against itself is meaningless.
	if !strings.Contains(out, "| CDI | 12.00% | - | -3.00% |") {
		t.Errorf("benchmark risk row wrong in:\n%s", out)
	}
}

func TestRenderWeeklyCustomAndITD(t *testing.T) {
	pinNow(t)
	rep := sampleReport()
	rep.Boundaries.Custom = date.NewRange(date.New(2025, 5, 30), date.New(2025, 8, 15))
	rep.Boundaries.Inceptions = map[string]date.Date{"Carteiras": date.New(2025, 1, 2)}
	rep.Rows[0].Custom = &weeklyperf.Row{Instrument: "CART-A", Return: 0.03}
	rep.Rows[0].ITD = &weeklyperf.Row{Instrument: "CART-A", Return: 0.10}

	var b bytes.Buffer
	RenderWeekly(&b, rep)
	out := b.String()

	for _, want := range []string{
		"| Custom | 2025-05-30 | 2025-08-15 |",
		"| Instrument | Week | MTD | YTD | Custom | ITD |",
		"| **Carteira A** | +1.23% | +2.00% | +8.50% | +3.00% | +10.00% |",
		"| Fundo X | -0.40% | - | - | - | - |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderMonthly(t *testing.T) {
	pinNow(t)
	years := []weeklyperf.MonthlyYear{
		{
			Year:      2025,
			Months:    [12]float64{0.01, math.NaN(), 0.02, math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()},
			YTD:       0.0302,
			Inception: 0.0302,
		},
	}
	var b bytes.Buffer
	RenderMonthly(&b, "Carteira A", years)
	out := b.String()

	for _, want := range []string{
		"# Monthly Returns of Carteira A",
		"| Year | Jan | Feb | Mar |",
		"| 2025 | +1.00% | - | +2.00% |",
		"+3.02% | +3.02% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderMonthlyEmpty(t *testing.T) {
	pinNow(t)
	var b bytes.Buffer
	RenderMonthly(&b, "Unknown", nil)
	if !strings.Contains(b.String(), "No data.") {
		t.Errorf("missing empty notice in:\n%s", b.String())
	}
}

func TestRenderDiagnosticsEmpty(t *testing.T) {
	var b bytes.Buffer
	RenderDiagnostics(&b, weeklyperf.NewDiagnostics())
	if b.Len() != 0 {
		t.Errorf("empty diagnostics rendered:\n%s", b.String())
	}
	RenderDiagnostics(&b, nil)
	if b.Len() != 0 {
		t.Errorf("nil diagnostics rendered:\n%s", b.String())
	}
}

func TestRenderDiagnostics(t *testing.T) {
	d := weeklyperf.NewDiagnostics()
	d.DegradedCalendar = true
	d.CountParseFailure("FUND")
	d.CountParseFailure("FUND")
	d.Uncategorized = append(d.Uncategorized, "MYSTERY")
	d.Anomalies = append(d.Anomalies, weeklyperf.Anomaly{
		Instrument: "FUND", Date: date.New(2025, 3, 10), Return: 1.5,
	})

	var b bytes.Buffer
	RenderDiagnostics(&b, d)
	out := b.String()

	for _, want := range []string{
		"## Diagnostics",
		"weekdays only",
		"MYSTERY is not in the universe",
		"| FUND | 2 |",
		"| FUND | 2025-03-10 | +150.00% |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestConditionalBlock(t *testing.T) {
	var b bytes.Buffer
	ConditionalBlock(&b, func(w io.Writer) bool {
		w.Write([]byte("kept"))
		return true
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		w.Write([]byte("dropped"))
		return false
	})
	if b.String() != "kept" {
		t.Errorf("got %q", b.String())
	}
}
