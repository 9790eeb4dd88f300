package weeklyperf

import (
	"math"
	"testing"
)

func nan() float64 { return math.NaN() }

func TestClassify(t *testing.T) {
	policy := DefaultClassifierPolicy()
	tests := []struct {
		name   string
		values []float64
		want   SeriesKind
	}{
		{"price level", []float64{100, 101, 99}, Level},
		{"index level", []float64{1350.2, 1351.8, 1349.9}, Level},
		{"percentage points", []float64{0.45, -0.3, 1.2, 0.8}, PercentReturn},
		{"decimal returns", []float64{0.0045, -0.003, 0.012}, DecimalReturn},
		{"empty", nil, DecimalReturn},
		{"all missing", []float64{nan(), nan()}, DecimalReturn},
		{"missing ignored", []float64{nan(), 100, 101}, Level},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Classify(tc.values); got != tc.want {
				t.Errorf("Classify(%v)=%s want %s", tc.values, got, tc.want)
			}
		})
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{in: "1.234,56", want: 1234.56},
		{in: "0,45", want: 0.45},
		{in: "-1,2", want: -1.2},
		{in: " 12,00 ", want: 12},
		{in: "1234.56", want: 1234.56}, // machine format passes through
		{in: "nd", err: true},
		{in: "", err: true},
		{in: "--", err: true},
	}
	for _, tc := range tests {
		got, err := ParseLocale(tc.in)
		if (err != nil) != tc.err {
			t.Errorf("ParseLocale(%q) err=%v want err=%v", tc.in, err, tc.err)
			continue
		}
		if err != nil {
			if !math.IsNaN(got) {
				t.Errorf("ParseLocale(%q) failure must yield NaN, got %v", tc.in, got)
			}
			continue
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ParseLocale(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestToDecimalReturnsLevel(t *testing.T) {
	got := ToDecimalReturns([]float64{100, 101, 99}, Level)
	if !math.IsNaN(got[0]) {
		t.Errorf("first level observation must have no return, got %v", got[0])
	}
	if math.Abs(got[1]-0.01) > 1e-9 {
		t.Errorf("got[1]=%v want 0.01", got[1])
	}
	if math.Abs(got[2]-(-0.019801980198019802)) > 1e-9 {
		t.Errorf("got[2]=%v want ~-0.0198", got[2])
	}
}

func TestToDecimalReturnsLevelSkipsGaps(t *testing.T) {
	// The change is computed between consecutive valid points, a gap does
	// not reset the series.
	got := ToDecimalReturns([]float64{100, nan(), 102}, Level)
	if !math.IsNaN(got[1]) {
		t.Errorf("gap must stay missing, got %v", got[1])
	}
	if math.Abs(got[2]-0.02) > 1e-9 {
		t.Errorf("got[2]=%v want 0.02", got[2])
	}
}

func TestToDecimalReturnsPercent(t *testing.T) {
	got := ToDecimalReturns([]float64{1.5, -0.5, nan()}, PercentReturn)
	if math.Abs(got[0]-0.015) > 1e-12 || math.Abs(got[1]+0.005) > 1e-12 {
		t.Errorf("got=%v", got)
	}
	if !math.IsNaN(got[2]) {
		t.Errorf("missing must stay missing, got %v", got[2])
	}
}

func TestToDecimalReturnsPassThrough(t *testing.T) {
	in := []float64{0.01, nan(), -0.02}
	got := ToDecimalReturns(in, DecimalReturn)
	if got[0] != 0.01 || got[2] != -0.02 || !math.IsNaN(got[1]) {
		t.Errorf("got=%v", got)
	}
}

func TestAnomalous(t *testing.T) {
	if Anomalous(0.99) || Anomalous(-1.0) || Anomalous(nan()) {
		t.Error("values within [-1,1] or missing are not anomalous")
	}
	if !Anomalous(1.5) || !Anomalous(-1.01) {
		t.Error("returns beyond 100% must be flagged")
	}
}
