/*
Package report folds the check collection into dashboard KPIs.

PURPOSE:
  A pure sweep over the state: window profit sums, status-bucket counts,
  and historical profit totals, all relative to an injected "today".
  Nothing here mutates state and nothing is cached, so running the sweep
  twice without a mutation yields identical figures.

WINDOWS (half-open index intervals):
  today:  [today, today+1)
  month:  [firstOfMonth, firstOfMonth+30)
  future: [today, today+futureDays)

PAID CHECKS:
  Excluded from every window sum and from the active/near-due/overdue
  counts, but still included in the historical base/extension totals.

EXTENSION PROFIT:
  Reported only in TotalExtraProfit, never spread across windows - it is
  attributed to the moment of extension.
*/
package report

import (
	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/check"
)

// KPI is one aggregation snapshot.
type KPI struct {
	Today  decimal.Decimal `json:"today_profit"`
	Month  decimal.Decimal `json:"month_profit"`
	Future decimal.Decimal `json:"future_profit"`

	FutureDays int `json:"future_days"`

	Active  int `json:"active"`
	NearDue int `json:"near_due"`
	Overdue int `json:"overdue"`
	Paid    int `json:"paid"`

	TotalBaseProfit  decimal.Decimal `json:"total_base_profit"`
	TotalExtraProfit decimal.Decimal `json:"total_extra_profit"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
}

// Compute sweeps the collection relative to today.
func Compute(s *check.State, today calendar.Date) KPI {
	k := KPI{
		Today:            decimal.Zero,
		Month:            decimal.Zero,
		Future:           decimal.Zero,
		FutureDays:       s.FutureDays,
		TotalBaseProfit:  decimal.Zero,
		TotalExtraProfit: decimal.Zero,
	}

	todayIdx := today.Index()
	monthIdx := today.StartOfMonth().Index()
	futureEnd := todayIdx + calendar.Index(s.FutureDays)

	for _, c := range s.Checks {
		// Historical totals include every check regardless of status.
		k.TotalBaseProfit = k.TotalBaseProfit.Add(c.BaseProfit())
		k.TotalExtraProfit = k.TotalExtraProfit.Add(c.ExtraProfit)

		switch check.DeriveStatus(c, today) {
		case check.DisplayPaid:
			k.Paid++
			continue
		case check.DisplayOverdue:
			k.Overdue++
		case check.DisplayNearDue:
			k.NearDue++
		default:
			k.Active++
		}

		k.Today = k.Today.Add(c.IntervalProfit(todayIdx, todayIdx+1))
		k.Month = k.Month.Add(c.IntervalProfit(monthIdx, monthIdx+30))
		k.Future = k.Future.Add(c.IntervalProfit(todayIdx, futureEnd))
	}

	k.TotalProfit = k.TotalBaseProfit.Add(k.TotalExtraProfit)
	return k
}
