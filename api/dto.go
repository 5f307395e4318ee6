/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  domain model from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers parse and hand off to the book; business validation lives in
  the book and check packages. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/daftar/check-engine/book"
	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/check"
	"github.com/daftar/check-engine/report"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CheckDTO represents a check in API responses. Money fields are decimal
// strings; dates are canonical yy/mm/dd.
type CheckDTO struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	SeriesID string `json:"series_id,omitempty"`
	Seq      int    `json:"seq"`

	Buyer    string `json:"buyer"`
	Phone    string `json:"phone"`
	Referrer string `json:"ref"`

	Principal int64  `json:"principal"`
	Rate      string `json:"rate"`
	Start     string `json:"start_date"`
	End       string `json:"end_date"`

	Amount string `json:"amount"`
	Code   string `json:"code,omitempty"`
	Label  string `json:"label,omitempty"`
	Note   string `json:"note,omitempty"`

	Status        string `json:"status"`
	DisplayStatus string `json:"display_status"`

	ExtraDays     int    `json:"extra_days"`
	ExtraProfit   string `json:"extra_profit"`
	MonthlyProfit string `json:"monthly_profit,omitempty"`
	BaseProfit    string `json:"base_profit"`
	TotalProfit   string `json:"total_profit"`
}

func toCheckDTO(c *check.Check, today calendar.Date) CheckDTO {
	dto := CheckDTO{
		ID:            c.ID,
		Type:          string(c.Kind),
		SeriesID:      c.SeriesID,
		Seq:           c.Seq,
		Buyer:         c.Buyer,
		Phone:         c.Phone,
		Referrer:      c.Referrer,
		Principal:     c.Principal,
		Rate:          c.Rate.String(),
		Start:         c.Start.String(),
		End:           c.End.String(),
		Amount:        c.Amount.String(),
		Code:          c.Code,
		Label:         c.Label,
		Note:          c.Note,
		Status:        string(c.Status),
		DisplayStatus: string(check.DeriveStatus(c, today)),
		ExtraDays:     c.ExtraDays,
		ExtraProfit:   c.ExtraProfit.String(),
		BaseProfit:    c.BaseProfit().String(),
		TotalProfit:   c.TotalProfit().String(),
	}
	if c.Kind == check.KindMonthly {
		dto.MonthlyProfit = c.MonthlyProfit.String()
	}
	return dto
}

func toCheckDTOs(checks []*check.Check, today calendar.Date) []CheckDTO {
	dtos := make([]CheckDTO, len(checks))
	for i, c := range checks {
		dtos[i] = toCheckDTO(c, today)
	}
	return dtos
}

// CommandResponse is returned by every mutating endpoint: the touched
// checks plus the post-mutation aggregation snapshot.
type CommandResponse struct {
	Checks []CheckDTO `json:"checks"`
	KPI    report.KPI `json:"kpi"`
}

func toCommandResponse(res book.Result, today calendar.Date) CommandResponse {
	return CommandResponse{
		Checks: toCheckDTOs(res.Checks, today),
		KPI:    res.KPI,
	}
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateCheckRequest creates a single check or an installment series
// depending on Type ("single" or "monthly").
type CreateCheckRequest struct {
	Type     string `json:"type"`
	Buyer    string `json:"buyer"`
	Phone    string `json:"phone"`
	Referrer string `json:"ref"`

	Principal int64  `json:"principal"`
	Rate      string `json:"rate"`
	Start     string `json:"start_date"`

	// Single only
	End  string `json:"end_date,omitempty"`
	Code string `json:"code,omitempty"`

	// Monthly only
	Months int `json:"months,omitempty"`
	Grace  int `json:"grace_months,omitempty"`

	Label string `json:"label,omitempty"`
	Note  string `json:"note,omitempty"`
}

// EditCheckRequest updates an existing check's fields.
type EditCheckRequest struct {
	Buyer    string `json:"buyer"`
	Phone    string `json:"phone"`
	Referrer string `json:"ref"`

	Principal int64  `json:"principal"`
	Rate      string `json:"rate"`
	Start     string `json:"start_date"`
	End       string `json:"end_date"`

	Code  string `json:"code,omitempty"`
	Label string `json:"label,omitempty"`
	Note  string `json:"note,omitempty"`
}

// ExtendRequest pushes a check's due date forward.
type ExtendRequest struct {
	End string `json:"end_date"`
}

// FutureDaysRequest changes the future-window horizon.
type FutureDaysRequest struct {
	Days int `json:"days"`
}

// AddReferrerRequest registers a new referrer.
type AddReferrerRequest struct {
	Name string `json:"name"`
}

// PreviewRequest computes profit for prospective inputs without creating.
type PreviewRequest struct {
	Principal int64  `json:"principal"`
	Rate      string `json:"rate"`
	Start     string `json:"start_date"`
	End       string `json:"end_date"`
}

// PreviewResponse carries the computed profit.
type PreviewResponse struct {
	Profit string `json:"profit"`
}
