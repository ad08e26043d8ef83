package runner

import "time"

// LastNBusinessDays returns the last n U.S. bond-market sessions (most
// recent first). It excludes Saturdays, Sundays, and the SIFMA
// full-close holidays.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if isBusinessDayUS(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// DefaultWindow returns the date window covering the last n sessions,
// ending with the most recent session strictly before now.
func DefaultWindow(n int, now time.Time) (start, end time.Time) {
	if n < 1 {
		n = 1
	}
	days := LastNBusinessDays(n, truncateToDate(now).AddDate(0, 0, -1))
	return days[len(days)-1], days[0]
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isBusinessDayUS returns true if date is a U.S. bond-market session.
// Holidays that fall on weekends are already excluded by the weekend
// rule.
func isBusinessDayUS(d time.Time) bool {
	// Weekend
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	day := truncateToDate(d)
	for _, h := range fullCloseHolidays(d.Year()) {
		if h.Equal(day) {
			return false
		}
	}
	return true
}

// fullCloseHolidays lists the SIFMA recommended full-close dates for a
// year.
func fullCloseHolidays(year int) []time.Time {
	fixed := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.Local)
	}

	holidays := []time.Time{
		fixed(time.January, 1),                            // New Year
		nthWeekday(year, time.January, time.Monday, 3),    // Martin Luther King Jr. Day
		nthWeekday(year, time.February, time.Monday, 3),   // Presidents Day
		easterSunday(year).AddDate(0, 0, -2),              // Good Friday
		lastWeekday(year, time.May, time.Monday),          // Memorial Day
		fixed(time.July, 4),                               // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.October, time.Monday, 2),    // Columbus Day
		fixed(time.November, 11),                          // Veterans Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving
		fixed(time.December, 25),                          // Christmas
	}
	if year >= 2022 {
		holidays = append(holidays, fixed(time.June, 19)) // Juneteenth
	}
	return holidays
}

// nthWeekday returns the n-th given weekday of a month.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(wd) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}
