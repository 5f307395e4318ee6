package report_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/check"
	"github.com/daftar/check-engine/report"
)

func date(y, m, d int) calendar.Date {
	return calendar.Date{Year: y, Month: m, Day: d}
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func assertEqual(t *testing.T, label string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

// fixtureState builds a collection with one of each interesting shape,
// all relative to today = 05/06/10:
//
//	A: active single, 3,000,000 @ 1%, 05/06/01 -> 05/07/01 (30 days)
//	B: paid single, 100,000,000 @ 2.5%, 30 days, 2,000,000 extension profit
//	C: overdue single, 30,000,000 @ 2%, 05/05/05 -> 05/06/05 (30 days)
//	D: active installment, share 2,100,000, 05/06/01 -> 05/08/01 (60 days)
func fixtureState() *check.State {
	s := check.DefaultState()
	s.Checks = []*check.Check{
		{
			ID: "a", Kind: check.KindSingle, Seq: 1, Buyer: "a",
			Referrer: check.NoReferrer, Principal: 3_000_000, Rate: dec("1"),
			Start: date(5, 6, 1), End: date(5, 7, 1),
			ExtraProfit: decimal.Zero, Status: check.StatusUnpaid,
		},
		{
			ID: "b", Kind: check.KindSingle, Seq: 1, Buyer: "b",
			Referrer: check.NoReferrer, Principal: 100_000_000, Rate: dec("2.5"),
			Start: date(5, 1, 1), End: date(5, 2, 1),
			ExtraDays: 30, ExtraProfit: dec("2000000"), Status: check.StatusPaid,
		},
		{
			ID: "c", Kind: check.KindSingle, Seq: 1, Buyer: "c",
			Referrer: check.NoReferrer, Principal: 30_000_000, Rate: dec("2"),
			Start: date(5, 5, 5), End: date(5, 6, 5),
			ExtraProfit: decimal.Zero, Status: check.StatusUnpaid,
		},
		{
			ID: "d", Kind: check.KindMonthly, SeriesID: "s1", Seq: 1, Buyer: "d",
			Referrer: check.NoReferrer, Principal: 120_000_000, Rate: dec("3"),
			Start: date(5, 6, 1), End: date(5, 8, 1),
			ExtraProfit: decimal.Zero, MonthlyProfit: dec("2100000"),
			Status: check.StatusUnpaid,
		},
	}
	return &s
}

func TestCompute_WindowSums(t *testing.T) {
	// Hand-computed expectations:
	//   today  [t, t+1):  A 1,000 + D 35,000                    =    36,000
	//   month  [1st,+30): A 30,000 + C 80,000 + D 1,050,000     = 1,160,000
	//   future [t, t+30): A 21,000 + D 1,050,000                = 1,071,000
	// B is paid: excluded from every window.

	k := report.Compute(fixtureState(), date(5, 6, 10))

	assertEqual(t, "today", k.Today, dec("36000"))
	assertEqual(t, "month", k.Month, dec("1160000"))
	assertEqual(t, "future", k.Future, dec("1071000"))
}

func TestCompute_StatusCounts(t *testing.T) {
	k := report.Compute(fixtureState(), date(5, 6, 10))

	if k.Active != 2 || k.NearDue != 0 || k.Overdue != 1 || k.Paid != 1 {
		t.Fatalf("counts = active %d, near %d, overdue %d, paid %d",
			k.Active, k.NearDue, k.Overdue, k.Paid)
	}
}

func TestCompute_HistoricalTotalsIncludePaid(t *testing.T) {
	// TotalBase = 30,000 (A) + 2,500,000 (B) + 600,000 (C) + 2,100,000 (D)
	k := report.Compute(fixtureState(), date(5, 6, 10))

	assertEqual(t, "total base", k.TotalBaseProfit, dec("5230000"))
	assertEqual(t, "total extra", k.TotalExtraProfit, dec("2000000"))
	assertEqual(t, "total", k.TotalProfit, dec("7230000"))
}

func TestCompute_Idempotent(t *testing.T) {
	// GIVEN: no mutation between two sweeps
	// THEN: identical figures

	s := fixtureState()
	today := date(5, 6, 10)

	first := report.Compute(s, today)
	second := report.Compute(s, today)

	assertEqual(t, "today", second.Today, first.Today)
	assertEqual(t, "month", second.Month, first.Month)
	assertEqual(t, "future", second.Future, first.Future)
	assertEqual(t, "total", second.TotalProfit, first.TotalProfit)
	if first.Active != second.Active || first.NearDue != second.NearDue ||
		first.Overdue != second.Overdue || first.Paid != second.Paid {
		t.Fatal("counts changed between idempotent sweeps")
	}
}

func TestCompute_HorizonChangesFutureWindowOnly(t *testing.T) {
	s := fixtureState()
	today := date(5, 6, 10)

	wide := *s
	wide.FutureDays = 60
	k30 := report.Compute(s, today)
	k60 := report.Compute(&wide, today)

	if !k60.Future.GreaterThan(k30.Future) {
		t.Fatalf("widening the horizon should not shrink the future sum: %s vs %s",
			k60.Future, k30.Future)
	}
	assertEqual(t, "today", k60.Today, k30.Today)
	assertEqual(t, "month", k60.Month, k30.Month)
}

func TestCompute_EmptyState(t *testing.T) {
	s := check.DefaultState()
	k := report.Compute(&s, date(5, 6, 10))

	assertEqual(t, "today", k.Today, decimal.Zero)
	assertEqual(t, "total", k.TotalProfit, decimal.Zero)
	if k.Active+k.NearDue+k.Overdue+k.Paid != 0 {
		t.Fatal("empty state must have zero counts")
	}
}
