package weeklyperf

import (
	"testing"

	"github.com/vbessa/weeklyperf/date"
)

func TestIsBusinessDay(t *testing.T) {
	cal := B3()
	tests := []struct {
		day  string
		want bool
	}{
		{"2025-08-20", true},  // Wednesday
		{"2025-08-23", false}, // Saturday
		{"2025-08-24", false}, // Sunday
		{"2025-04-21", false}, // Tiradentes, a Monday
		{"2025-06-19", false}, // Corpus Christi
		{"2025-06-20", true},  // Friday after Corpus Christi
	}
	for _, tc := range tests {
		if got := cal.IsBusinessDay(date.MustParse(tc.day)); got != tc.want {
			t.Errorf("IsBusinessDay(%s)=%v want %v", tc.day, got, tc.want)
		}
	}
}

func TestWeekdayCalendarIgnoresHolidays(t *testing.T) {
	cal := WeekdayCalendar()
	if !cal.Degraded() {
		t.Fatal("weekday calendar must report degraded")
	}
	if !cal.IsBusinessDay(date.MustParse("2025-04-21")) {
		t.Error("degraded calendar must accept any weekday")
	}
	if cal.IsBusinessDay(date.MustParse("2025-08-23")) {
		t.Error("degraded calendar must still reject Saturdays")
	}
}

func TestFridayAnchors(t *testing.T) {
	cal := B3()
	// Reference is Wednesday 2025-08-20. The last complete week ended on
	// Friday 2025-08-15, the week before that on Friday 2025-08-08.
	ref := date.MustParse("2025-08-20")

	prev, err := cal.PreviousFriday(ref)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-08-15"); prev != want {
		t.Errorf("PreviousFriday=%s want %s", prev, want)
	}

	back, err := cal.TwoWeeksBackFriday(ref)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-08-08"); back != want {
		t.Errorf("TwoWeeksBackFriday=%s want %s", back, want)
	}

	if back.Add(5).After(prev) {
		t.Errorf("anchors %s and %s are less than 5 days apart", back, prev)
	}
}

func TestFridayAnchorSkipsHoliday(t *testing.T) {
	cal := B3()
	// Good Friday 2025-04-18: the previous-Friday anchor from the following
	// Wednesday must retreat to Thursday 2025-04-17.
	got, err := cal.PreviousFriday(date.MustParse("2025-04-23"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-04-17"); got != want {
		t.Errorf("PreviousFriday=%s want %s", got, want)
	}
}

func TestCurrentWeekFridayClamped(t *testing.T) {
	cal := B3()
	// On a Wednesday the week's Friday is still in the future: clamp to the
	// reference before the business-day correction.
	got, err := cal.CurrentWeekFriday(date.MustParse("2025-08-20"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-08-20"); got != want {
		t.Errorf("CurrentWeekFriday=%s want %s", got, want)
	}

	// On a Saturday the Friday already happened, no clamping.
	got, err = cal.CurrentWeekFriday(date.MustParse("2025-08-23"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-08-22"); got != want {
		t.Errorf("CurrentWeekFriday=%s want %s", got, want)
	}
}

func TestMonthAndYearAnchors(t *testing.T) {
	cal := B3()

	got, err := cal.LastBusinessDayOfPreviousMonth(date.MustParse("2025-08-20"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-07-31"); got != want {
		t.Errorf("LastBusinessDayOfPreviousMonth=%s want %s", got, want)
	}

	// June 2025: the month before July started on a Tuesday, June 30 was a Monday.
	got, err = cal.LastBusinessDayOfPreviousMonth(date.MustParse("2025-07-15"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2025-06-30"); got != want {
		t.Errorf("LastBusinessDayOfPreviousMonth=%s want %s", got, want)
	}

	// B3 does not trade on Dec 31; 2024 closed on Monday Dec 30.
	got, err = cal.LastBusinessDayOfPreviousYear(date.MustParse("2025-08-20"))
	if err != nil {
		t.Fatal(err)
	}
	if want := date.MustParse("2024-12-30"); got != want {
		t.Errorf("LastBusinessDayOfPreviousYear=%s want %s", got, want)
	}
}

func TestSearchExhaustion(t *testing.T) {
	// A calendar where every day is a holiday exhausts the bounded search.
	var days []date.Date
	d := date.MustParse("2025-01-01")
	for i := 0; i < 400; i++ {
		days = append(days, d.Add(i))
	}
	cal := NewCalendar("closed", days)
	if _, err := cal.PreviousFriday(date.MustParse("2025-08-20")); err == nil {
		t.Error("expected bounded search to exhaust")
	}
	if _, err := cal.LastBusinessDayOfPreviousMonth(date.MustParse("2025-08-20")); err == nil {
		t.Error("expected bounded search to exhaust")
	}
}

func TestLoadCalendar(t *testing.T) {
	if _, err := LoadCalendar("does/not/exist.json"); err == nil {
		t.Error("expected error for missing calendar file")
	}
	if name := B3().Name(); name != "B3" {
		t.Errorf("embedded calendar name=%q", name)
	}
}
