package weeklyperf

import (
	"fmt"
	"strings"

	"github.com/vbessa/weeklyperf/date"
)

// WeekMode selects which week the weekly window covers.
type WeekMode int

const (
	// LastCompleteWeek spans two-Fridays-back through the previous Friday.
	LastCompleteWeek WeekMode = iota
	// WeekInProgress spans the previous Friday through this week's Friday,
	// clamped to the reference date.
	WeekInProgress
)

func (m WeekMode) String() string {
	if m == WeekInProgress {
		return "current"
	}
	return "last"
}

// ParseWeekMode parses a week mode flag value.
func ParseWeekMode(s string) (WeekMode, error) {
	switch strings.ToLower(s) {
	case "last", "complete", "last-complete":
		return LastCompleteWeek, nil
	case "current", "progress", "in-progress":
		return WeekInProgress, nil
	default:
		return LastCompleteWeek, fmt.Errorf("unknown week mode %q (want last or current)", s)
	}
}

// Options selects the windows of one report run.
type Options struct {
	Reference       date.Date
	Week            WeekMode
	Custom          *date.Range // optional extra window
	InceptionToDate bool        // add the per-category ITD window
}

// Boundaries are the resolved window dates, for display.
type Boundaries struct {
	Week       date.Range
	MTD        date.Range
	YTD        date.Range
	Custom     date.Range           // zero when not requested
	Inceptions map[string]date.Date // category -> ITD start, when requested
}

// ReportRow is the merged statistics of one instrument. A nil cell means the
// instrument had too little data in that window, never that it was dropped.
type ReportRow struct {
	Instrument Instrument
	Week       *Row
	MTD        *Row
	YTD        *Row
	Custom     *Row
	ITD        *Row
}

// Report is the output of one orchestrator run.
type Report struct {
	Reference   date.Date
	Benchmark   string
	Boundaries  Boundaries
	Rows        []ReportRow
	Diagnostics *Diagnostics
}

// BuildReport resolves the period windows for the reference date, computes
// the statistics per window and left-merges them into one table in universe
// order. Instruments present in the data but absent from the universe are
// appended under the Other category and flagged.
//
// The only error case is a calendar whose bounded backward search exhausts;
// every data problem degrades to missing cells plus a diagnostics entry.
func BuildReport(m *ReturnMatrix, u *Universe, cal *Calendar, opts Options, diag *Diagnostics) (*Report, error) {
	if diag == nil {
		diag = NewDiagnostics()
	}
	diag.DegradedCalendar = diag.DegradedCalendar || cal.Degraded()

	ref := opts.Reference
	if ref.IsZero() {
		ref = date.Today()
	}

	b, err := resolveBoundaries(m, cal, ref, opts)
	if err != nil {
		return nil, err
	}

	week := indexRows(Compute(m, b.Week, u.Benchmark))
	mtd := indexRows(Compute(m, b.MTD, u.Benchmark))
	ytd := indexRows(Compute(m, b.YTD, u.Benchmark))
	var custom map[string]*Row
	if opts.Custom != nil {
		custom = indexRows(Compute(m, b.Custom, u.Benchmark))
	}

	// ITD shares one start per category.
	itd := make(map[string]map[string]*Row)
	if opts.InceptionToDate {
		b.Inceptions = make(map[string]date.Date)
		for _, cat := range u.Categories() {
			incep, ok := u.Inception(cat)
			if !ok {
				continue
			}
			start := snap(m, incep)
			b.Inceptions[cat] = start
			itd[cat] = indexRows(Compute(m, date.NewRange(start, b.YTD.To), u.Benchmark))
		}
	}

	report := &Report{Reference: ref, Benchmark: u.Benchmark, Boundaries: b, Diagnostics: diag}

	appendRow := func(ins Instrument) {
		row := ReportRow{
			Instrument: ins,
			Week:       week[ins.ID],
			MTD:        mtd[ins.ID],
			YTD:        ytd[ins.ID],
		}
		if custom != nil {
			row.Custom = custom[ins.ID]
		}
		if byCat, ok := itd[ins.Category]; ok {
			row.ITD = byCat[ins.ID]
		}
		report.Rows = append(report.Rows, row)
	}

	for _, ins := range u.Instruments {
		appendRow(ins)
	}
	// Left merge never drops a series: unknown instruments land in Other.
	for _, id := range m.Instruments() {
		if _, known := u.Lookup(id); known {
			continue
		}
		diag.Uncategorized = append(diag.Uncategorized, id)
		appendRow(Instrument{ID: id, Name: id, Category: OtherCategory})
	}

	return report, nil
}

// resolveBoundaries derives the window dates: data-driven starts first,
// calendar fallback second, every boundary snapped to the nearest data point
// at or before it (never after).
func resolveBoundaries(m *ReturnMatrix, cal *Calendar, ref date.Date, opts Options) (Boundaries, error) {
	var b Boundaries

	var weekFrom, weekTo date.Date
	var err error
	switch opts.Week {
	case WeekInProgress:
		if weekFrom, err = cal.PreviousFriday(ref); err != nil {
			return b, err
		}
		if weekTo, err = cal.CurrentWeekFriday(ref); err != nil {
			return b, err
		}
	default:
		if weekFrom, err = cal.TwoWeeksBackFriday(ref); err != nil {
			return b, err
		}
		if weekTo, err = cal.PreviousFriday(ref); err != nil {
			return b, err
		}
	}
	b.Week = date.NewRange(snap(m, weekFrom), snap(m, weekTo))

	end := snap(m, ref)

	mtdStart, ok := m.LastDateInMonth(date.New(ref.Year(), ref.Month(), 1).Add(-1))
	if !ok {
		if mtdStart, err = cal.LastBusinessDayOfPreviousMonth(ref); err != nil {
			return b, err
		}
		mtdStart = snap(m, mtdStart)
	}
	b.MTD = date.NewRange(mtdStart, end)

	ytdStart, ok := m.LastDateInYear(ref.Year() - 1)
	if !ok {
		if ytdStart, err = cal.LastBusinessDayOfPreviousYear(ref); err != nil {
			return b, err
		}
		ytdStart = snap(m, ytdStart)
	}
	b.YTD = date.NewRange(ytdStart, end)

	if opts.Custom != nil {
		b.Custom = date.NewRange(snap(m, opts.Custom.From), snap(m, opts.Custom.To))
	}
	return b, nil
}

// snap returns the latest data point at or before day, or day itself when
// the data starts later (the window then simply comes out empty).
func snap(m *ReturnMatrix, day date.Date) date.Date {
	if d, ok := m.LastDateOnOrBefore(day); ok {
		return d
	}
	return day
}

func indexRows(rows []Row) map[string]*Row {
	out := make(map[string]*Row, len(rows))
	for i := range rows {
		out[rows[i].Instrument] = &rows[i]
	}
	return out
}
