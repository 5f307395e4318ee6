package calendar

import "time"

// =============================================================================
// GREGORIAN -> JALALI - Bridge from the real clock into the synthetic calendar
// =============================================================================

// FromGregorian converts a real Gregorian date into this calendar using the
// standard Jalali arithmetic conversion. Deterministic for a given input;
// precision is good enough for due-date classification, not legally
// authoritative.
func FromGregorian(t time.Time) Date {
	jy, jm, jd := gregorianToJalali(t.Year(), int(t.Month()), t.Day())
	return Date{Year: jy - epochYear, Month: jm, Day: jd}
}

// Today converts the current wall-clock date.
func Today() Date {
	return FromGregorian(time.Now())
}

// gregorianToJalali is the classic integer conversion algorithm
// (33-year cycle approximation).
func gregorianToJalali(gy, gm, gd int) (jy, jm, jd int) {
	gdm := [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

	if gy > 1600 {
		jy = 979
		gy -= 1600
	} else {
		jy = 0
		gy -= 621
	}

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}

	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + gdm[gm-1]

	jy += 33 * (days / 12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461

	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}
	return jy, jm, jd
}
