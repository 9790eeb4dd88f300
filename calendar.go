package weeklyperf

import (
	"fmt"
	"time"

	"github.com/vbessa/weeklyperf/date"
)

// Bounds for the backward business-day search. Week and year anchors sit at
// most a handful of days away from a trading day; a month anchor can be a
// full month away in a degenerate calendar.
const (
	maxWeekSearch  = 10
	maxMonthSearch = 31
)

// Calendar answers business-day questions and derives the anchor dates the
// report windows are built from.
//
// A calendar is either backed by an exchange holiday table (B3/ANBIMA here)
// or degraded to a weekday-only Mon-Fri check. Degraded calendars still
// answer every query, the flag is surfaced in the report diagnostics.
type Calendar struct {
	name     string
	holidays map[date.Date]struct{}
	degraded bool
}

// NewCalendar returns a calendar backed by the given holiday table.
func NewCalendar(name string, holidays []date.Date) *Calendar {
	m := make(map[date.Date]struct{}, len(holidays))
	for _, d := range holidays {
		m[d] = struct{}{}
	}
	return &Calendar{name: name, holidays: m}
}

// WeekdayCalendar returns the degraded Mon-Fri fallback calendar.
func WeekdayCalendar() *Calendar {
	return &Calendar{name: "weekday", degraded: true}
}

// Name returns the calendar name, for display.
func (c *Calendar) Name() string { return c.name }

// Degraded reports whether this calendar is the weekday-only fallback.
func (c *Calendar) Degraded() bool { return c.degraded }

// IsBusinessDay reports whether d is a trading day.
func (c *Calendar) IsBusinessDay(d date.Date) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := c.holidays[d]
	return !holiday
}

// lastBusinessDayOnOrBefore walks backward one calendar day at a time from
// anchor, at most limit attempts.
func (c *Calendar) lastBusinessDayOnOrBefore(anchor date.Date, limit int) (date.Date, error) {
	d := anchor
	for i := 0; i < limit; i++ {
		if c.IsBusinessDay(d) {
			return d, nil
		}
		d = d.Add(-1)
	}
	return date.Date{}, fmt.Errorf("no business day found within %d days before %s", limit, anchor)
}

// PreviousFriday returns the last complete week's Friday: the Monday of
// ref's ISO week minus 3 calendar days, corrected to a business day.
func (c *Calendar) PreviousFriday(ref date.Date) (date.Date, error) {
	return c.lastBusinessDayOnOrBefore(ref.Monday().Add(-3), maxWeekSearch)
}

// TwoWeeksBackFriday returns the Friday one week before PreviousFriday:
// Monday of ref's ISO week minus 10 calendar days, corrected to a business day.
func (c *Calendar) TwoWeeksBackFriday(ref date.Date) (date.Date, error) {
	return c.lastBusinessDayOnOrBefore(ref.Monday().Add(-10), maxWeekSearch)
}

// CurrentWeekFriday returns the Friday of ref's week, clamped to ref when
// that Friday is still in the future, then corrected to a business day.
func (c *Calendar) CurrentWeekFriday(ref date.Date) (date.Date, error) {
	friday := ref.Monday().Add(4)
	if friday.After(ref) {
		friday = ref
	}
	return c.lastBusinessDayOnOrBefore(friday, maxWeekSearch)
}

// LastBusinessDayOfPreviousMonth returns the last trading day before the
// first day of ref's month.
func (c *Calendar) LastBusinessDayOfPreviousMonth(ref date.Date) (date.Date, error) {
	anchor := date.New(ref.Year(), ref.Month(), 1).Add(-1)
	return c.lastBusinessDayOnOrBefore(anchor, maxMonthSearch)
}

// LastBusinessDayOfPreviousYear returns the last trading day of the year
// before ref's.
func (c *Calendar) LastBusinessDayOfPreviousYear(ref date.Date) (date.Date, error) {
	anchor := date.New(ref.Year()-1, time.December, 31)
	return c.lastBusinessDayOnOrBefore(anchor, maxWeekSearch)
}
