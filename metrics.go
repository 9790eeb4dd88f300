package weeklyperf

import (
	"math"

	"github.com/vbessa/weeklyperf/date"
	"gonum.org/v1/gonum/stat"
)

// tradingDays is the annualization base: Brazilian trading days per year.
const tradingDays = 252

// nearZero is the variance floor under which a Sharpe ratio is meaningless.
const nearZero = 1e-12

// Row holds the statistics of one instrument over one window. Values are
// decimal (0.01 = 1%).
type Row struct {
	Instrument  string
	Return      float64 // accumulated return, product of (1+r) - 1
	Volatility  float64 // sample std of daily returns, annualized by sqrt(252)
	Sharpe      float64 // annualized mean excess over the benchmark / annualized excess vol
	MaxDrawdown float64 // worst peak-to-trough of the wealth index, always <= 0
}

// Compute calculates the per-instrument statistics of m over the window r.
//
// Instruments with fewer than 2 observations in the window are omitted from
// the result, not zero-filled: too little data is absence, not performance.
// An empty window yields an empty slice. The function performs no I/O and
// never fails.
func Compute(m *ReturnMatrix, r date.Range, benchmark string) []Row {
	benchDays, benchReturns := m.window(benchmark, r)
	bench := make(map[date.Date]float64, len(benchDays))
	for i, on := range benchDays {
		bench[on] = benchReturns[i]
	}

	var rows []Row
	for _, key := range m.Instruments() {
		days, rs := m.window(key, r)
		if len(rs) < 2 {
			continue
		}
		rows = append(rows, Row{
			Instrument:  key,
			Return:      accumulate(rs),
			Volatility:  stat.StdDev(rs, nil) * math.Sqrt(tradingDays),
			Sharpe:      sharpe(key, benchmark, days, rs, bench),
			MaxDrawdown: maxDrawdown(rs),
		})
	}
	return rows
}

func accumulate(rs []float64) float64 {
	acc := 1.0
	for _, v := range rs {
		acc *= 1 + v
	}
	return acc - 1
}

// sharpe computes the annualized Sharpe ratio against the benchmark on the
// inner join of both date indexes. By convention the benchmark's own Sharpe
// is 0, as is any ratio whose excess series has (near) zero variance or
// fewer than 2 aligned points.
func sharpe(key, benchmark string, days []date.Date, rs []float64, bench map[date.Date]float64) float64 {
	if key == benchmark {
		return 0
	}
	var excess []float64
	for i, on := range days {
		if b, ok := bench[on]; ok {
			excess = append(excess, rs[i]-b)
		}
	}
	if len(excess) < 2 {
		return 0
	}
	std := stat.StdDev(excess, nil)
	if std < nearZero {
		return 0
	}
	return stat.Mean(excess, nil) * tradingDays / (std * math.Sqrt(tradingDays))
}

// maxDrawdown is the minimum of (index/peak - 1) over the cumulative wealth
// index of the window, 0 when the index never falls below a previous peak.
func maxDrawdown(rs []float64) float64 {
	index, peak := 1.0, 1.0
	worst := 0.0
	for _, v := range rs {
		index *= 1 + v
		if index > peak {
			peak = index
		}
		if dd := index/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}
