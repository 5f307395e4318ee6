/*
Package check defines the instrument model for post-dated checks and the
state container they live in.

PURPOSE:
  A Check is a single post-dated payment obligation: principal, rate,
  start and due date, plus accumulated extension state. Checks come in two
  kinds (the tagged-union replacement for "field present only sometimes"):

    KindSingle:  standalone check; SeriesID empty, Seq 1
    KindMonthly: member of an installment series; SeriesID links members,
                 Seq is the 1-based position, MonthlyProfit carries the
                 fixed per-installment profit share computed at creation

  All members of one series share principal, rate, start date, buyer and
  referrer.

DERIVED VS STORED:
  Profit figures are derived on demand from principal/rate/dates - never
  cached on the record. The two exceptions, by design, are the extension
  accumulators (ExtraDays/ExtraProfit) and the installment share
  (MonthlyProfit), which are fixed at the moment they are computed.

SEE ALSO:
  - status.go: display-status derivation (paid/overdue/near-due/...)
  - store.go: whole-state persistence interface
  - book package: lifecycle commands that build and mutate Checks
*/
package check

import (
	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/interest"
)

// =============================================================================
// CHECK - The central entity
// =============================================================================

// Kind tags the two instrument shapes.
type Kind string

const (
	KindSingle  Kind = "single"
	KindMonthly Kind = "monthly"
)

// Status is the stored lifecycle state. Display-only states (overdue,
// near-due, extended) are derived, never stored.
type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

type Check struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"type"`
	SeriesID string `json:"series_id,omitempty"` // monthly members only
	Seq      int    `json:"seq"`                 // 1-based within a series, 1 for singles

	Buyer    string `json:"buyer"`
	Phone    string `json:"phone"`
	Referrer string `json:"ref"`

	Principal int64           `json:"principal"`
	Rate      decimal.Decimal `json:"rate"` // percent per 30-day period
	Start     calendar.Date   `json:"start_date"`
	End       calendar.Date   `json:"end_date"` // strictly after Start

	// Extension accumulators. Monotonically non-decreasing; extensions
	// only add.
	ExtraDays   int             `json:"extra_days"`
	ExtraProfit decimal.Decimal `json:"extra_profit"`

	// Fixed per-installment profit share, set at series creation.
	// Zero for singles.
	MonthlyProfit decimal.Decimal `json:"monthly_profit,omitempty"`

	Label  string          `json:"label"`
	Note   string          `json:"note"`
	Code   string          `json:"code"` // external 16-digit identifying code
	Amount decimal.Decimal `json:"amount"`

	Status Status `json:"status"`
}

// ActiveDays is the check's life in index days.
func (c *Check) ActiveDays() int {
	return calendar.Diff(c.Start, c.End)
}

// BaseProfit is the profit over the check's full life, excluding
// extensions. Singles derive it from principal/rate/days; installments
// report their fixed share.
func (c *Check) BaseProfit() decimal.Decimal {
	if c.Kind == KindMonthly {
		return c.MonthlyProfit
	}
	return interest.BaseProfit(c.Principal, c.Rate, c.ActiveDays())
}

// TotalProfit is base plus accumulated extension profit.
func (c *Check) TotalProfit() decimal.Decimal {
	return c.BaseProfit().Add(c.ExtraProfit)
}

// IntervalProfit is the part of the check's base profit that falls inside
// the half-open window [winStart, winEnd). Extension profit is never
// distributed across windows; it is attributed to the extension event.
func (c *Check) IntervalProfit(winStart, winEnd calendar.Index) decimal.Decimal {
	start, end := c.Start.Index(), c.End.Index()
	if c.Kind == KindMonthly {
		return interest.InstallmentIntervalProfit(c.MonthlyProfit, start, end, winStart, winEnd)
	}
	return interest.IntervalProfit(c.Principal, c.Rate, start, end, winStart, winEnd)
}

// =============================================================================
// STATE - The single owned collection
// =============================================================================

// NoReferrer is the sentinel registry entry. It is reserved and always
// present after load.
const NoReferrer = "no-referrer"

// Horizon bounds for the future-window KPI.
const (
	DefaultFutureDays = 30
	MinFutureDays     = 1
	MaxFutureDays     = 365
)

// State is the whole persisted application state. The in-memory copy is
// the sole owner; stores only serialize and deserialize it wholesale.
type State struct {
	Referrers  []string `json:"referrers"`
	Checks     []*Check `json:"checks"`
	FutureDays int      `json:"future_days"`
}

// DefaultState is the first-run and recovery fallback.
func DefaultState() State {
	return State{
		Referrers:  []string{NoReferrer},
		Checks:     []*Check{},
		FutureDays: DefaultFutureDays,
	}
}

// EnsureDefaults repairs a loaded state: the sentinel referrer is
// guaranteed present (at position 0) and the horizon is clamped back to
// its default when out of range.
func (s *State) EnsureDefaults() {
	if !s.HasReferrer(NoReferrer) {
		s.Referrers = append([]string{NoReferrer}, s.Referrers...)
	}
	if s.Checks == nil {
		s.Checks = []*Check{}
	}
	if s.FutureDays < MinFutureDays || s.FutureDays > MaxFutureDays {
		s.FutureDays = DefaultFutureDays
	}
}

// Clone returns a deep copy. Commands snapshot the state before
// mutating so a failed persist can roll back without sharing records.
func (s *State) Clone() State {
	out := State{
		Referrers:  append([]string(nil), s.Referrers...),
		Checks:     make([]*Check, len(s.Checks)),
		FutureDays: s.FutureDays,
	}
	for i, c := range s.Checks {
		cc := *c
		out.Checks[i] = &cc
	}
	return out
}

// Find returns the check with the given id, or nil.
func (s *State) Find(id string) *Check {
	for _, c := range s.Checks {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// HasReferrer reports whether name is registered.
func (s *State) HasReferrer(name string) bool {
	for _, r := range s.Referrers {
		if r == name {
			return true
		}
	}
	return false
}
