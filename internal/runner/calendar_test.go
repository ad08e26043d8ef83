package runner

import (
	"testing"
	"time"
)

func TestIsBusinessDayUS_WeekendsAndHolidays(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"regular tuesday", time.Date(2013, 3, 12, 0, 0, 0, 0, time.Local), true},
		{"saturday", time.Date(2013, 3, 16, 0, 0, 0, 0, time.Local), false},
		{"sunday", time.Date(2013, 3, 17, 0, 0, 0, 0, time.Local), false},
		{"new year", time.Date(2013, 1, 1, 0, 0, 0, 0, time.Local), false},
		{"mlk day", time.Date(2013, 1, 21, 0, 0, 0, 0, time.Local), false},
		{"good friday", time.Date(2013, 3, 29, 0, 0, 0, 0, time.Local), false},
		{"memorial day", time.Date(2013, 5, 27, 0, 0, 0, 0, time.Local), false},
		{"independence day", time.Date(2013, 7, 4, 0, 0, 0, 0, time.Local), false},
		{"thanksgiving", time.Date(2013, 11, 28, 0, 0, 0, 0, time.Local), false},
		{"christmas", time.Date(2013, 12, 25, 0, 0, 0, 0, time.Local), false},
		{"juneteenth observed", time.Date(2023, 6, 19, 0, 0, 0, 0, time.Local), false},
		{"juneteenth before adoption", time.Date(2018, 6, 19, 0, 0, 0, 0, time.Local), true},
	}
	for _, tc := range cases {
		if got := isBusinessDayUS(tc.date); got != tc.want {
			t.Errorf("%s (%s): got %v, want %v", tc.name, tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestLastNBusinessDays_CountAndOrder(t *testing.T) {
	from := time.Date(2013, 7, 6, 12, 30, 0, 0, time.Local) // Saturday
	days := LastNBusinessDays(5, from)
	if len(days) != 5 {
		t.Fatalf("want 5 got %d", len(days))
	}
	// Strictly decreasing, no weekends
	for i := 0; i < len(days); i++ {
		if i > 0 && !days[i].Before(days[i-1]) {
			t.Fatal("dates should be strictly decreasing")
		}
		wd := days[i].Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Fatal("weekend day returned")
		}
	}
}

func TestLastNBusinessDays_SkipsHoliday(t *testing.T) {
	// Friday 2013-07-05; July 4 was a Thursday holiday.
	from := time.Date(2013, 7, 5, 0, 0, 0, 0, time.Local)
	days := LastNBusinessDays(3, from)

	want := []time.Time{
		time.Date(2013, 7, 5, 0, 0, 0, 0, time.Local),
		time.Date(2013, 7, 3, 0, 0, 0, 0, time.Local),
		time.Date(2013, 7, 2, 0, 0, 0, 0, time.Local),
	}
	for i, d := range days {
		if !d.Equal(want[i]) {
			t.Fatalf("day %d: got %s, want %s", i, d.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestDefaultWindow(t *testing.T) {
	// Tuesday 2013-07-09: the last completed session is Monday 07-08,
	// and three sessions back skips the July 4 holiday.
	now := time.Date(2013, 7, 9, 10, 0, 0, 0, time.Local)
	start, end := DefaultWindow(3, now)

	if want := time.Date(2013, 7, 8, 0, 0, 0, 0, time.Local); !end.Equal(want) {
		t.Fatalf("end: got %s, want %s", end.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if want := time.Date(2013, 7, 3, 0, 0, 0, 0, time.Local); !start.Equal(want) {
		t.Fatalf("start: got %s, want %s", start.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestEasterSunday(t *testing.T) {
	cases := map[int]time.Time{
		2008: time.Date(2008, 3, 23, 0, 0, 0, 0, time.Local),
		2011: time.Date(2011, 4, 24, 0, 0, 0, 0, time.Local),
		2013: time.Date(2013, 3, 31, 0, 0, 0, 0, time.Local),
	}
	for year, want := range cases {
		if got := easterSunday(year); !got.Equal(want) {
			t.Errorf("easterSunday(%d): got %s, want %s", year, got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}
