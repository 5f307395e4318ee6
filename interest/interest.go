/*
Package interest computes check profit under the 30/360 accounting calendar.

PURPOSE:
  Pure profit formulas over principal, rate, and day counts produced by the
  calendar package. No state, no caching: callers derive figures on demand.

THE FORMULA FAMILY:
  Base profit:   principal * (rate/100) * (days/30)
  Interval:      same rate spread uniformly over the check's life,
                 multiplied by the overlap with a query window
  Series:        average-due-date amortization; the series total is split
                 equally across installments, and each installment's fixed
                 share is spread per-day over its own span
  Extension:     the base formula applied to the due-date delta

PRECISION:
  All money figures are decimal.Decimal. Rates are percent per 30-day
  period (e.g. 2.5 means 2.5% per month-equivalent).
*/
package interest

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
)

var (
	hundred = decimal.NewFromInt(100)
	thirty  = decimal.NewFromInt(30)
	half    = decimal.NewFromFloat(0.5)
)

// Installment count bounds for a series.
const (
	MinMonths = 1
	MaxMonths = 36
)

var (
	// ErrBadMonths is returned when an installment count is outside [1, 36].
	ErrBadMonths = errors.New("installment count out of range")

	// ErrBadGrace is returned for a negative grace period.
	ErrBadGrace = errors.New("grace period cannot be negative")
)

// =============================================================================
// SIMPLE CHECKS
// =============================================================================

// BaseProfit returns principal * (rate/100) * (activeDays/30).
// Never negative: zero when activeDays <= 0.
func BaseProfit(principal int64, rate decimal.Decimal, activeDays int) decimal.Decimal {
	if activeDays <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(principal).
		Mul(rate).Div(hundred).
		Mul(decimal.NewFromInt(int64(activeDays))).Div(thirty)
}

// IntervalProfit returns the share of a simple check's profit that falls
// inside the half-open query window [winStart, winEnd). The profit rate is
// uniform across the check's active span, so this is just the base formula
// applied to the overlap.
func IntervalProfit(principal int64, rate decimal.Decimal, start, end, winStart, winEnd calendar.Index) decimal.Decimal {
	return BaseProfit(principal, rate, calendar.Overlap(start, end, winStart, winEnd))
}

// ExtensionProfit returns the profit added by pushing a due date forward
// by diffDays. Callers reject non-positive deltas before calling.
func ExtensionProfit(principal int64, rate decimal.Decimal, diffDays int) decimal.Decimal {
	return BaseProfit(principal, rate, diffDays)
}

// =============================================================================
// INSTALLMENT SERIES - Average-due-date amortization
// =============================================================================

// SeriesProfit computes the total profit of an installment series and the
// equal per-installment share, using the average-due-date method:
//
//	x     = months/2 + grace*0.5   (grace has an effective minimum of 1)
//	total = principal * (rate/100) * x
//	share = total / months
//
// This assumes installments land at evenly-spaced 30-day intervals starting
// grace periods after issuance, which avoids iterating every installment's
// individual day count.
func SeriesProfit(principal int64, rate decimal.Decimal, months, grace int) (total, share decimal.Decimal, err error) {
	if months < MinMonths || months > MaxMonths {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %d", ErrBadMonths, months)
	}
	if grace < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %d", ErrBadGrace, grace)
	}
	if grace < 1 {
		grace = 1
	}

	x := decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(2)).
		Add(decimal.NewFromInt(int64(grace)).Mul(half))

	total = decimal.NewFromInt(principal).Mul(rate).Div(hundred).Mul(x)
	share = total.Div(decimal.NewFromInt(int64(months)))
	return total, share, nil
}

// InstallmentIntervalProfit spreads an installment's fixed profit share
// uniformly over its own active span [start, end) and returns the part
// that falls inside [winStart, winEnd). The share is never recomputed from
// principal and rate.
func InstallmentIntervalProfit(share decimal.Decimal, start, end, winStart, winEnd calendar.Index) decimal.Decimal {
	activeDays := int(end - start)
	if activeDays <= 0 {
		return decimal.Zero
	}
	overlap := calendar.Overlap(start, end, winStart, winEnd)
	if overlap == 0 {
		return decimal.Zero
	}
	return share.Div(decimal.NewFromInt(int64(activeDays))).
		Mul(decimal.NewFromInt(int64(overlap)))
}
