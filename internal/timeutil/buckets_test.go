package timeutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2025, time.June, 10), "2025-W24"},
		{date(2025, time.January, 1), "2025-W01"},
		// Dec 29-31 2025 fall in W01 of 2026
		{date(2025, time.December, 29), "2026-W01"},
		{date(2025, time.December, 31), "2026-W01"},
		// Jan 1 2021 belongs to W53 of 2020
		{date(2021, time.January, 1), "2020-W53"},
		// 2020 is a 53-week ISO year
		{date(2020, time.December, 31), "2020-W53"},
		{date(2024, time.December, 30), "2025-W01"},
	}
	for _, c := range cases {
		if got := WeekKey(c.in); got != c.want {
			t.Errorf("WeekKey(%s) = %q, want %q", c.in.Format(DateLayout), got, c.want)
		}
	}
}

func TestWeekKeyIgnoresZoneAndClock(t *testing.T) {
	zone := time.FixedZone("UTC+13", 13*60*60)
	late := time.Date(2025, time.June, 10, 23, 45, 0, 0, zone)
	if got, want := WeekKey(late), "2025-W24"; got != want {
		t.Fatalf("WeekKey = %q, want %q", got, want)
	}
	if WeekKey(late) != WeekKey(date(2025, time.June, 10)) {
		t.Fatal("same calendar date must bucket identically regardless of zone")
	}
}

func TestMonthKey(t *testing.T) {
	if got, want := MonthKey(date(2025, time.June, 10)), "2025-06"; got != want {
		t.Fatalf("MonthKey = %q, want %q", got, want)
	}
	if got, want := MonthKey(date(2025, time.December, 31)), "2025-12"; got != want {
		t.Fatalf("MonthKey = %q, want %q", got, want)
	}
}

func TestKeysSortChronologically(t *testing.T) {
	// One date per week across a year boundary; lexicographic order of the
	// keys must match chronological order of the dates.
	start := date(2024, time.November, 4)
	prevWeek, prevMonth := "", ""
	for i := 0; i < 20; i++ {
		d := start.AddDate(0, 0, 7*i)
		wk, mk := WeekKey(d), MonthKey(d)
		if wk < prevWeek {
			t.Fatalf("week keys out of order: %q after %q", wk, prevWeek)
		}
		if mk < prevMonth {
			t.Fatalf("month keys out of order: %q after %q", mk, prevMonth)
		}
		prevWeek, prevMonth = wk, mk
	}
}

func TestMonthWindows(t *testing.T) {
	now := date(2025, time.March, 15)

	cur := MonthWindow(now)
	if got, want := cur.From, date(2025, time.March, 1); !got.Equal(want) {
		t.Fatalf("MonthWindow.From = %s, want %s", got, want)
	}
	if cur.To.Before(now) {
		t.Fatal("MonthWindow.To must include the reference date")
	}

	prev := PreviousMonthWindow(now)
	if got, want := prev.From, date(2025, time.February, 1); !got.Equal(want) {
		t.Fatalf("PreviousMonthWindow.From = %s, want %s", got, want)
	}
	if !prev.To.Before(cur.From) {
		t.Fatal("previous window must end before the current one starts")
	}
}

func TestStartOfWeek(t *testing.T) {
	// 2025-06-10 is a Tuesday; the ISO week starts Monday 2025-06-09.
	if got, want := StartOfWeek(date(2025, time.June, 10)), date(2025, time.June, 9); !got.Equal(want) {
		t.Fatalf("StartOfWeek = %s, want %s", got, want)
	}
	// Sunday belongs to the week that started six days earlier.
	if got, want := StartOfWeek(date(2025, time.June, 15)), date(2025, time.June, 9); !got.Equal(want) {
		t.Fatalf("StartOfWeek(sunday) = %s, want %s", got, want)
	}
}

func TestLastNWeeksWindow(t *testing.T) {
	w := LastNWeeksWindow(date(2025, time.June, 10), 4)
	if got, want := w.From, date(2025, time.May, 19); !got.Equal(want) {
		t.Fatalf("LastNWeeksWindow.From = %s, want %s", got, want)
	}
}
