/*
Package book owns the check collection and its lifecycle commands.

PURPOSE:
  The Book is the single injectable state container. Every mutating
  command follows the same pipeline:

    validate -> mutate in memory -> persist whole state -> recompute KPIs

  and returns a Result carrying the affected checks plus a fresh
  aggregation snapshot. There are no ambient re-render side effects and
  no hidden singletons; tests construct a Book over a fixture store.

COMMANDS:
  CreateSingle   one standalone check
  CreateSeries   months linked installment checks sharing a series id
  Edit           field updates with re-validation
  Extend         push a due date forward, accruing extension profit
  TogglePaid     unpaid <-> paid
  SetFutureDays  change the future-window horizon
  AddReferrer    grow the referrer registry
  Reset          full-state wipe (the only way checks leave the dataset)

CLOCK:
  "today" is an injected function so classification and KPIs are
  deterministic under test.
*/
package book

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/check"
	"github.com/daftar/check-engine/interest"
	"github.com/daftar/check-engine/report"
)

// Book is the explicitly owned state container.
type Book struct {
	mu    sync.Mutex
	store check.StateStore
	now   func() calendar.Date
	state check.State
}

// Result is what every mutating command returns: the checks it touched
// and the aggregation snapshot after the mutation.
type Result struct {
	Checks []*check.Check `json:"checks"`
	KPI    report.KPI     `json:"kpi"`
}

// Open loads state from the store and returns a ready Book.
// A nil clock means the real wall clock.
func Open(ctx context.Context, store check.StateStore, now func() calendar.Date) (*Book, error) {
	if now == nil {
		now = calendar.Today
	}
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	state.EnsureDefaults()
	return &Book{store: store, now: now, state: state}, nil
}

// Today returns the reference date used for classification.
func (b *Book) Today() calendar.Date { return b.now() }

// KPI recomputes the aggregation snapshot. Pure; safe to call repeatedly.
func (b *Book) KPI() report.KPI {
	b.mu.Lock()
	defer b.mu.Unlock()
	return report.Compute(&b.state, b.now())
}

// Snapshot returns a copy of the whole state for export collaborators.
func (b *Book) Snapshot() check.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	s.Referrers = append([]string(nil), b.state.Referrers...)
	s.Checks = append([]*check.Check(nil), b.state.Checks...)
	return s
}

// Referrers returns the registry, insertion-ordered.
func (b *Book) Referrers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.state.Referrers...)
}

// Get returns one check by id.
func (b *Book) Get(id string) (*check.Check, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.state.Find(id)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", check.ErrNotFound, id)
	}
	return c, nil
}

// =============================================================================
// CREATE
// =============================================================================

// CreateSingle validates the input and appends one standalone check.
// The face amount is principal plus base profit at creation.
func (b *Book) CreateSingle(ctx context.Context, in Input) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end, err := in.validate(&b.state)
	if err != nil {
		return Result{}, err
	}

	c := &check.Check{
		ID:          uuid.NewString(),
		Kind:        check.KindSingle,
		Seq:         1,
		Buyer:       strings.TrimSpace(in.Buyer),
		Phone:       strings.TrimSpace(in.Phone),
		Referrer:    in.Referrer,
		Principal:   in.Principal,
		Rate:        in.Rate,
		Start:       start,
		End:         end,
		ExtraProfit: decimal.Zero,
		Label:       in.Label,
		Note:        in.Note,
		Code:        in.Code,
		Status:      check.StatusUnpaid,
	}
	c.Amount = decimal.NewFromInt(c.Principal).Add(c.BaseProfit())

	prior := b.state.Clone()
	b.state.Checks = append(b.state.Checks, c)
	if err := b.persist(ctx, prior); err != nil {
		return Result{}, err
	}
	return b.result(c), nil
}

// CreateSeries validates the input and appends Months linked installment
// checks. Installment i (0-based) falls due (grace+i)*30 index days after
// the start, with grace treated as at least 1. Each member carries the
// fixed per-installment profit share, and a face amount of
// principal/months plus that share.
func (b *Book) CreateSeries(ctx context.Context, in SeriesInput) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, err := in.validate(&b.state)
	if err != nil {
		return Result{}, err
	}

	_, share, err := interest.SeriesProfit(in.Principal, in.Rate, in.Months, in.Grace)
	if err != nil {
		return Result{}, err
	}

	grace := in.Grace
	if grace < 1 {
		grace = 1
	}

	months := decimal.NewFromInt(int64(in.Months))
	amount := decimal.NewFromInt(in.Principal).Div(months).Add(share)
	seriesID := uuid.NewString()
	startIdx := start.Index()

	created := make([]*check.Check, 0, in.Months)
	for i := 0; i < in.Months; i++ {
		dueIdx := startIdx + calendar.Index((grace+i)*30)
		c := &check.Check{
			ID:            uuid.NewString(),
			Kind:          check.KindMonthly,
			SeriesID:      seriesID,
			Seq:           i + 1,
			Buyer:         strings.TrimSpace(in.Buyer),
			Phone:         strings.TrimSpace(in.Phone),
			Referrer:      in.Referrer,
			Principal:     in.Principal,
			Rate:          in.Rate,
			Start:         start,
			End:           calendar.FromIndex(dueIdx),
			ExtraProfit:   decimal.Zero,
			MonthlyProfit: share,
			Label:         in.Label,
			Note:          in.Note,
			Amount:        amount,
			Status:        check.StatusUnpaid,
		}
		created = append(created, c)
	}

	prior := b.state.Clone()
	b.state.Checks = append(b.state.Checks, created...)
	if err := b.persist(ctx, prior); err != nil {
		return Result{}, err
	}
	return b.result(created...), nil
}

// =============================================================================
// MUTATE
// =============================================================================

// Edit re-validates and applies field updates. For singles the face
// amount is recomputed under the possibly changed dates and rate.
// For installment members the shared issuance terms (buyer, phone,
// referrer, principal, rate, start) are applied to every member of the
// series so the series stays consistent; installment amounts and profit
// shares remain fixed from creation.
func (b *Book) Edit(ctx context.Context, id string, in Input) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.state.Find(id)
	if c == nil {
		return Result{}, fmt.Errorf("%w: %s", check.ErrNotFound, id)
	}

	start, end, err := in.validate(&b.state)
	if err != nil {
		return Result{}, err
	}

	buyer := strings.TrimSpace(in.Buyer)
	phone := strings.TrimSpace(in.Phone)

	// For installment members the new start propagates to the whole
	// series, so it must stay strictly before every member's due date
	// (the edited member's own due date being the incoming one).
	if c.Kind == check.KindMonthly {
		for _, member := range b.state.Checks {
			if member.SeriesID != c.SeriesID {
				continue
			}
			due := member.End
			if member.ID == c.ID {
				due = end
			}
			if calendar.Diff(start, due) <= 0 {
				return Result{}, fmt.Errorf("%w: start %s not before installment %d due %s",
					check.ErrDateOrder, start, member.Seq, due)
			}
		}
	}

	prior := b.state.Clone()
	touched := []*check.Check{c}
	if c.Kind == check.KindMonthly {
		touched = nil
		for _, member := range b.state.Checks {
			if member.SeriesID != c.SeriesID {
				continue
			}
			member.Buyer = buyer
			member.Phone = phone
			member.Referrer = in.Referrer
			member.Principal = in.Principal
			member.Rate = in.Rate
			member.Start = start
			touched = append(touched, member)
		}
		// Only the edited member's own fields change.
		c.End = end
		c.Code = in.Code
		c.Label = in.Label
		c.Note = in.Note
	} else {
		c.Buyer = buyer
		c.Phone = phone
		c.Referrer = in.Referrer
		c.Principal = in.Principal
		c.Rate = in.Rate
		c.Start = start
		c.End = end
		c.Code = in.Code
		c.Label = in.Label
		c.Note = in.Note
		c.Amount = decimal.NewFromInt(c.Principal).Add(c.BaseProfit())
	}

	if err := b.persist(ctx, prior); err != nil {
		return Result{}, err
	}
	return b.result(touched...), nil
}

// Extend pushes a check's due date forward. The added profit is the base
// formula over the index delta; it accumulates in ExtraProfit/ExtraDays
// and the status is forced back to unpaid - an extension means the debt
// is still open.
func (b *Book) Extend(ctx context.Context, id, newEnd string) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.state.Find(id)
	if c == nil {
		return Result{}, fmt.Errorf("%w: %s", check.ErrNotFound, id)
	}

	end, err := calendar.Parse(newEnd)
	if err != nil {
		return Result{}, err
	}
	diff := calendar.Diff(c.End, end)
	if diff <= 0 {
		return Result{}, &check.ExtendError{ID: id, Current: c.End, Requested: end}
	}

	prior := b.state.Clone()
	c.ExtraProfit = c.ExtraProfit.Add(interest.ExtensionProfit(c.Principal, c.Rate, diff))
	c.ExtraDays += diff
	c.End = end
	c.Status = check.StatusUnpaid

	if err := b.persist(ctx, prior); err != nil {
		return Result{}, err
	}
	return b.result(c), nil
}

// TogglePaid flips a check between unpaid and paid.
func (b *Book) TogglePaid(ctx context.Context, id string) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.state.Find(id)
	if c == nil {
		return Result{}, fmt.Errorf("%w: %s", check.ErrNotFound, id)
	}

	prior := b.state.Clone()
	if c.Status == check.StatusPaid {
		c.Status = check.StatusUnpaid
	} else {
		c.Status = check.StatusPaid
	}

	if err := b.persist(ctx, prior); err != nil {
		return Result{}, err
	}
	return b.result(c), nil
}

// SetFutureDays changes the future-window horizon.
func (b *Book) SetFutureDays(ctx context.Context, days int) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if days < check.MinFutureDays || days > check.MaxFutureDays {
		return Result{}, fmt.Errorf("%w: %d", check.ErrBadHorizon, days)
	}
	prior := b.state.Clone()
	b.state.FutureDays = days
	if err := b.persist(ctx, prior); err != nil {
		return Result{}, err
	}
	return b.result(), nil
}

// AddReferrer registers a new referrer name.
func (b *Book) AddReferrer(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty", check.ErrReferrerName)
	}
	if b.state.HasReferrer(name) {
		return fmt.Errorf("%w: %q already registered", check.ErrReferrerName, name)
	}
	prior := b.state.Clone()
	b.state.Referrers = append(b.state.Referrers, name)
	return b.persist(ctx, prior)
}

// Reset wipes the whole state back to defaults. This is the only
// operation that removes checks.
func (b *Book) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prior := b.state
	b.state = check.DefaultState()
	return b.persist(ctx, prior)
}

// =============================================================================
// READ
// =============================================================================

// Preview computes the profit a prospective single check would accrue,
// without creating anything.
func (b *Book) Preview(principal int64, rate decimal.Decimal, startText, endText string) (decimal.Decimal, error) {
	if principal <= 0 {
		return decimal.Zero, check.ErrBadPrincipal
	}
	if !rate.IsPositive() {
		return decimal.Zero, check.ErrBadRate
	}
	start, err := calendar.Parse(startText)
	if err != nil {
		return decimal.Zero, err
	}
	end, err := calendar.Parse(endText)
	if err != nil {
		return decimal.Zero, err
	}
	if calendar.Diff(start, end) <= 0 {
		return decimal.Zero, check.ErrDateOrder
	}
	return interest.BaseProfit(principal, rate, calendar.Diff(start, end)), nil
}

// List returns checks matching a free-text query and an optional display
// status, in insertion order.
func (b *Book) List(query string, status check.DisplayStatus) []*check.Check {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := b.now()
	query = strings.ToLower(strings.TrimSpace(query))

	var out []*check.Check
	for _, c := range b.state.Checks {
		if status != "" && check.DeriveStatus(c, today) != status {
			continue
		}
		if query != "" && !matches(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matches searches across every descriptive and financial field.
func matches(c *check.Check, query string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		c.Buyer, c.Phone, c.Referrer, c.Code, c.Label, c.Note,
		c.Start.String(), c.End.String(),
		fmt.Sprintf("%d", c.Principal), c.Rate.String(),
	}, " "))
	return strings.Contains(haystack, query)
}

// =============================================================================
// INTERNAL
// =============================================================================

// persist writes the whole state. On failure the in-memory state rolls
// back to prior, so a command that cannot be saved leaves nothing behind.
func (b *Book) persist(ctx context.Context, prior check.State) error {
	if err := b.store.Save(ctx, b.state); err != nil {
		b.state = prior
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// result builds the command response; callers hold the lock.
func (b *Book) result(touched ...*check.Check) Result {
	return Result{
		Checks: touched,
		KPI:    report.Compute(&b.state, b.now()),
	}
}
