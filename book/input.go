package book

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/check"
)

// =============================================================================
// COMMAND INPUTS - Validated form data
// =============================================================================

// Input is the form data for creating or editing a standalone check.
type Input struct {
	Buyer    string
	Phone    string
	Referrer string

	Principal int64
	Rate      decimal.Decimal

	Start string // raw date text, localized digits accepted
	End   string

	Code  string // optional; must be exactly 16 digits when present
	Label string
	Note  string
}

// SeriesInput is the form data for creating an installment series.
type SeriesInput struct {
	Buyer    string
	Phone    string
	Referrer string

	Principal int64
	Rate      decimal.Decimal

	Start  string
	Months int // installment count, [1, 36]
	Grace  int // 30-day periods before the first installment, >= 0

	Label string
	Note  string
}

// validate checks the common fields and parses both dates.
// A failed validation leaves state untouched.
func (in Input) validate(s *check.State) (start, end calendar.Date, err error) {
	if err := validateParties(s, in.Buyer, in.Referrer); err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if err := validateTerms(in.Principal, in.Rate); err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if err := validateCode(in.Code); err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}

	start, err = calendar.Parse(in.Start)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	end, err = calendar.Parse(in.End)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if calendar.Diff(start, end) <= 0 {
		return calendar.Date{}, calendar.Date{}, check.ErrDateOrder
	}
	return start, end, nil
}

func (in SeriesInput) validate(s *check.State) (calendar.Date, error) {
	if err := validateParties(s, in.Buyer, in.Referrer); err != nil {
		return calendar.Date{}, err
	}
	if err := validateTerms(in.Principal, in.Rate); err != nil {
		return calendar.Date{}, err
	}
	return calendar.Parse(in.Start)
}

func validateParties(s *check.State, buyer, referrer string) error {
	if strings.TrimSpace(buyer) == "" {
		return check.ErrBuyerRequired
	}
	if !s.HasReferrer(referrer) {
		return fmt.Errorf("%w: %q", check.ErrUnknownReferrer, referrer)
	}
	return nil
}

func validateTerms(principal int64, rate decimal.Decimal) error {
	if principal <= 0 {
		return check.ErrBadPrincipal
	}
	if !rate.IsPositive() {
		return check.ErrBadRate
	}
	return nil
}

// validateCode accepts an empty code or exactly 16 ASCII digits.
func validateCode(code string) error {
	if code == "" {
		return nil
	}
	if len(code) != 16 {
		return fmt.Errorf("%w: got %d characters", check.ErrBadCode, len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: non-digit %q", check.ErrBadCode, r)
		}
	}
	return nil
}
