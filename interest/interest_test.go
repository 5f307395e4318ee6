package interest_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/interest"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertEqual(t *testing.T, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

// =============================================================================
// BASE PROFIT
// =============================================================================

func TestBaseProfit_OneFullPeriod(t *testing.T) {
	// GIVEN: principal 100,000,000 at 2.5% per 30-day period
	// WHEN: the check lives exactly 30 index days
	// THEN: profit is one full period: 2,500,000

	got := interest.BaseProfit(100_000_000, dec("2.5"), 30)
	assertEqual(t, got, dec("2500000"))
}

func TestBaseProfit_PartialPeriod(t *testing.T) {
	// 15 days at 2% on 30,000,000 = 30M * 0.02 * 0.5 = 300,000
	got := interest.BaseProfit(30_000_000, dec("2"), 15)
	assertEqual(t, got, dec("300000"))
}

func TestBaseProfit_NeverNegative(t *testing.T) {
	assertEqual(t, interest.BaseProfit(100_000_000, dec("2.5"), 0), decimal.Zero)
	assertEqual(t, interest.BaseProfit(100_000_000, dec("2.5"), -10), decimal.Zero)
}

// =============================================================================
// INTERVAL PROFIT
// =============================================================================

func TestIntervalProfit_FullSpanEqualsBase(t *testing.T) {
	start, end := calendar.Index(100), calendar.Index(160)

	full := interest.IntervalProfit(60_000_000, dec("3"), start, end, start, end)
	assertEqual(t, full, interest.BaseProfit(60_000_000, dec("3"), 60))
}

func TestIntervalProfit_DisjointWindowIsZero(t *testing.T) {
	got := interest.IntervalProfit(60_000_000, dec("3"),
		calendar.Index(100), calendar.Index(160),
		calendar.Index(200), calendar.Index(230))
	assertEqual(t, got, decimal.Zero)
}

func TestIntervalProfit_SingleDayWindow(t *testing.T) {
	// One day of 90,000,000 at 1% = 90M * 0.01 / 30 = 30,000
	got := interest.IntervalProfit(90_000_000, dec("1"),
		calendar.Index(0), calendar.Index(90),
		calendar.Index(10), calendar.Index(11))
	assertEqual(t, got, dec("30000"))
}

// =============================================================================
// SERIES AMORTIZATION
// =============================================================================

func TestSeriesProfit_AverageDueDate(t *testing.T) {
	// GIVEN: 120,000,000 at 3%, 6 installments, 1 grace period
	// WHEN: x = 6/2 + 1*0.5 = 3.5
	// THEN: total = 120M * 0.03 * 3.5 = 12,600,000; share = 2,100,000

	total, share, err := interest.SeriesProfit(120_000_000, dec("3"), 6, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, total, dec("12600000"))
	assertEqual(t, share, dec("2100000"))
}

func TestSeriesProfit_GraceMinimumIsOne(t *testing.T) {
	// grace 0 behaves as grace 1
	total0, _, err := interest.SeriesProfit(120_000_000, dec("3"), 6, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total1, _, err := interest.SeriesProfit(120_000_000, dec("3"), 6, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEqual(t, total0, total1)
}

func TestSeriesProfit_Bounds(t *testing.T) {
	if _, _, err := interest.SeriesProfit(1000, dec("2"), 0, 1); !errors.Is(err, interest.ErrBadMonths) {
		t.Fatalf("months=0: got %v, want ErrBadMonths", err)
	}
	if _, _, err := interest.SeriesProfit(1000, dec("2"), 37, 1); !errors.Is(err, interest.ErrBadMonths) {
		t.Fatalf("months=37: got %v, want ErrBadMonths", err)
	}
	if _, _, err := interest.SeriesProfit(1000, dec("2"), 6, -1); !errors.Is(err, interest.ErrBadGrace) {
		t.Fatalf("grace=-1: got %v, want ErrBadGrace", err)
	}
	if _, _, err := interest.SeriesProfit(1000, dec("2"), 36, 0); err != nil {
		t.Fatalf("months=36 should be accepted: %v", err)
	}
}

func TestInstallmentIntervalProfit_SpreadOverOwnSpan(t *testing.T) {
	// Share 2,100,000 over a 60-day span: half the span = half the share.
	share := dec("2100000")
	start, end := calendar.Index(0), calendar.Index(60)

	got := interest.InstallmentIntervalProfit(share, start, end, calendar.Index(0), calendar.Index(30))
	assertEqual(t, got, dec("1050000"))

	full := interest.InstallmentIntervalProfit(share, start, end, start, end)
	assertEqual(t, full, share)

	none := interest.InstallmentIntervalProfit(share, start, end, calendar.Index(100), calendar.Index(130))
	assertEqual(t, none, decimal.Zero)
}

// =============================================================================
// EXTENSION PROFIT
// =============================================================================

func TestExtensionProfit(t *testing.T) {
	// 30 extra days on 100,000,000 at 2% = one full period = 2,000,000
	got := interest.ExtensionProfit(100_000_000, dec("2"), 30)
	assertEqual(t, got, dec("2000000"))
}
