// Package weeklyperf computes standardized performance reports over daily
// return series.
//
// It ingests daily price or return series for a heterogeneous set of
// instruments (model portfolios, funds, ETFs, benchmarks) from sources with
// incompatible numeric conventions, normalizes them into a single aligned
// daily-return matrix, and computes accumulated return, annualized
// volatility, Sharpe ratio and maximum drawdown over business-calendar
// windows: week, month-to-date, year-to-date, inception-to-date and custom
// ranges.
//
// The computation core is pure: given a return matrix, a universe, a
// calendar and a reference date it always produces the same report, performs
// no I/O, and degrades to a smaller output instead of failing. Fetching and
// rendering live in the provider and renderer packages.
package weeklyperf
