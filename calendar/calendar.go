/*
Package calendar implements the synthetic accounting calendar used for all
interest and due-date arithmetic.

PURPOSE:
  Every check carries a localized (Jalali) display date, but all profit and
  overlap math runs on a single linear integer: the day index. This package
  owns both representations and the conversions between them. No other
  package performs raw index arithmetic.

KEY CONCEPTS:
  - Date:  year/month/day in the localized calendar (year is 2-digit,
           relative to epoch 1400)
  - Index: linear day count under a fixed 30-day-month / 360-day-year
           convention

THE 30/360 CONVENTION:
  The index formula treats every month as exactly 30 days and every year
  as exactly 360 days. This is a deliberate accounting convention (the
  same family as the 30/360 bond-basis day count), NOT a faithful
  Gregorian or Jalali day count. A date with day=31 still produces a
  valid, strictly-increasing index.

SEE ALSO:
  - jalali.go: conversion from the real Gregorian clock into this calendar
  - interest package: the profit formulas built on Diff/Overlap
*/
package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// epochYear anchors the 2-digit year: Date.Year 4 means Jalali 1404.
const epochYear = 1400

// =============================================================================
// DATE - Localized year/month/day
// =============================================================================

// Date is a localized calendar date. Immutable once constructed.
// Day 31 is accepted for any month; the index convention absorbs it.
type Date struct {
	Year  int // 2-digit, relative to epochYear
	Month int // 1..12
	Day   int // 1..31 (never checked against the specific month)
}

// Index is a totally ordered linear day count. Subtraction of two Index
// values yields a day-count difference under the 30/360 convention.
type Index int

var ErrInvalidDate = errors.New("invalid date")

// New validates the component ranges and returns a Date.
func New(year, month, day int) (Date, error) {
	if year < 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("%w: %02d/%02d/%02d", ErrInvalidDate, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Parse reads a date from free-form text. Localized digit glyphs are
// normalized to ASCII, every non-digit is dropped, and the first six
// digits are sliced as yy mm dd. Fewer than six digits is rejected.
func Parse(text string) (Date, error) {
	digits := normalizeDigits(text)
	if len(digits) < 6 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	year := int(digits[0]-'0')*10 + int(digits[1]-'0')
	month := int(digits[2]-'0')*10 + int(digits[3]-'0')
	day := int(digits[4]-'0')*10 + int(digits[5]-'0')
	return New(year, month, day)
}

// MustParse is Parse for fixtures and constants; it panics on bad input.
func MustParse(text string) Date {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// normalizeDigits maps Persian (U+06F0..U+06F9) and Arabic-Indic
// (U+0660..U+0669) digit glyphs to ASCII and strips everything else.
func normalizeDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		}
	}
	return b.String()
}

// String returns the canonical zero-padded yy/mm/dd form.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Index maps the date onto the linear day count:
//
//	((1400+year)*12 + (month-1))*30 + (day-1)
//
// Monotonic in (year, month, day) lexicographic order.
func (d Date) Index() Index {
	return Index(((epochYear+d.Year)*12+(d.Month-1))*30 + (d.Day - 1))
}

// FromIndex inverts Index for any day that fits the 30-day convention.
// Indexes produced from a day-31 date decode to day 1 of the next month;
// round-tripping is only lossless for day <= 30.
func FromIndex(i Index) Date {
	n := int(i)
	day := n%30 + 1
	n /= 30
	month := n%12 + 1
	n /= 12
	return Date{Year: n - epochYear, Month: month, Day: day}
}

// StartOfMonth returns day 1 of the date's month.
func (d Date) StartOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// MarshalJSON encodes the canonical yy/mm/dd form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts anything Parse accepts.
func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.Index() < other.Index() }
func (d Date) After(other Date) bool  { return d.Index() > other.Index() }
func (d Date) Equal(other Date) bool  { return d.Index() == other.Index() }

// =============================================================================
// INDEX ARITHMETIC
// =============================================================================

// Diff returns indexOf(b) - indexOf(a). Sign-significant.
func Diff(a, b Date) int {
	return int(b.Index() - a.Index())
}

// Overlap returns the length of the intersection of the half-open
// intervals [aStart, aEnd) and [bStart, bEnd). Zero when disjoint.
func Overlap(aStart, aEnd, bStart, bEnd Index) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return int(hi - lo)
}
