/*
handlers.go - HTTP API handlers for the check tracking engine

PURPOSE:
  Exposes the check book via REST. Handles HTTP request/response and JSON
  serialization, delegating all business logic to the book package.

ENDPOINTS:
  Checks:
    GET    /api/checks               List (q=, status= filters)
    POST   /api/checks               Create single check or series
    GET    /api/checks/{id}          Get one check
    PUT    /api/checks/{id}          Edit
    POST   /api/checks/{id}/extend   Push due date forward
    POST   /api/checks/{id}/toggle   Flip paid/unpaid

  Aggregation:
    GET    /api/kpis                 Dashboard snapshot
    PUT    /api/settings/future-days Change the future-window horizon

  Referrers:
    GET    /api/referrers            List registry
    POST   /api/referrers            Register a name

  Tools:
    POST   /api/preview              Profit preview (no mutation)
    GET    /api/export/csv           Flat table snapshot
    GET    /api/export/json          Full-state dump
    POST   /api/reset                Full-state wipe

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: validation errors, invalid input
  - 404: check not found
  - 409: business rejection (extension not after current due date)
  - 500: internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/daftar/check-engine/book"
	"github.com/daftar/check-engine/calendar"
	"github.com/daftar/check-engine/check"
	"github.com/daftar/check-engine/export"
	"github.com/daftar/check-engine/interest"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Book *book.Book
}

// NewHandler creates a handler over an opened book.
func NewHandler(b *book.Book) *Handler {
	return &Handler{Book: b}
}

// =============================================================================
// CHECK HANDLERS
// =============================================================================

// ListChecks returns checks filtered by free-text query and display status.
// GET /api/checks?q=...&status=...
func (h *Handler) ListChecks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := check.DisplayStatus(r.URL.Query().Get("status"))

	checks := h.Book.List(query, status)
	writeJSON(w, http.StatusOK, map[string]any{
		"checks": toCheckDTOs(checks, h.Book.Today()),
	})
}

// CreateCheck creates a standalone check or an installment series.
// POST /api/checks
func (h *Handler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate", err)
		return
	}

	var res book.Result
	switch req.Type {
	case string(check.KindMonthly):
		res, err = h.Book.CreateSeries(r.Context(), book.SeriesInput{
			Buyer:     req.Buyer,
			Phone:     req.Phone,
			Referrer:  req.Referrer,
			Principal: req.Principal,
			Rate:      rate,
			Start:     req.Start,
			Months:    req.Months,
			Grace:     req.Grace,
			Label:     req.Label,
			Note:      req.Note,
		})
	default:
		res, err = h.Book.CreateSingle(r.Context(), book.Input{
			Buyer:     req.Buyer,
			Phone:     req.Phone,
			Referrer:  req.Referrer,
			Principal: req.Principal,
			Rate:      rate,
			Start:     req.Start,
			End:       req.End,
			Code:      req.Code,
			Label:     req.Label,
			Note:      req.Note,
		})
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommandResponse(res, h.Book.Today()))
}

// GetCheck returns one check.
// GET /api/checks/{id}
func (h *Handler) GetCheck(w http.ResponseWriter, r *http.Request) {
	c, err := h.Book.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckDTO(c, h.Book.Today()))
}

// EditCheck re-validates and applies field updates.
// PUT /api/checks/{id}
func (h *Handler) EditCheck(w http.ResponseWriter, r *http.Request) {
	var req EditCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate", err)
		return
	}

	res, err := h.Book.Edit(r.Context(), chi.URLParam(r, "id"), book.Input{
		Buyer:     req.Buyer,
		Phone:     req.Phone,
		Referrer:  req.Referrer,
		Principal: req.Principal,
		Rate:      rate,
		Start:     req.Start,
		End:       req.End,
		Code:      req.Code,
		Label:     req.Label,
		Note:      req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommandResponse(res, h.Book.Today()))
}

// ExtendCheck pushes the due date forward.
// POST /api/checks/{id}/extend
func (h *Handler) ExtendCheck(w http.ResponseWriter, r *http.Request) {
	var req ExtendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Book.Extend(r.Context(), chi.URLParam(r, "id"), req.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommandResponse(res, h.Book.Today()))
}

// TogglePaid flips the stored status.
// POST /api/checks/{id}/toggle
func (h *Handler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	res, err := h.Book.TogglePaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommandResponse(res, h.Book.Today()))
}

// =============================================================================
// AGGREGATION HANDLERS
// =============================================================================

// GetKPIs returns the dashboard snapshot.
// GET /api/kpis
func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Book.KPI())
}

// SetFutureDays changes the future-window horizon.
// PUT /api/settings/future-days
func (h *Handler) SetFutureDays(w http.ResponseWriter, r *http.Request) {
	var req FutureDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Book.SetFutureDays(r.Context(), req.Days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommandResponse(res, h.Book.Today()))
}

// =============================================================================
// REFERRER HANDLERS
// =============================================================================

// ListReferrers returns the registry, insertion-ordered.
// GET /api/referrers
func (h *Handler) ListReferrers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"referrers": h.Book.Referrers()})
}

// AddReferrer registers a new name.
// POST /api/referrers
func (h *Handler) AddReferrer(w http.ResponseWriter, r *http.Request) {
	var req AddReferrerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Book.AddReferrer(r.Context(), req.Name); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"referrers": h.Book.Referrers()})
}

// =============================================================================
// TOOL HANDLERS
// =============================================================================

// PreviewProfit computes profit for prospective inputs without creating.
// POST /api/preview
func (h *Handler) PreviewProfit(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate", err)
		return
	}

	profit, err := h.Book.Preview(req.Principal, rate, req.Start, req.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{Profit: profit.String()})
}

// ExportCSV streams the flat table snapshot.
// GET /api/export/csv
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := export.CSV(h.Book.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="checks.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportJSON streams the full-state dump.
// GET /api/export/json
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := export.JSON(h.Book.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="checks.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Reset wipes the whole state.
// POST /api/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Book.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset", "kpi": h.Book.KPI()})
}

// Health is a liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, check.ErrNotFound):
		writeError(w, http.StatusNotFound, "Check not found", err)
	case errors.Is(err, check.ErrExtendNotLater):
		writeError(w, http.StatusConflict, "Extension rejected", err)
	case isValidation(err):
		writeError(w, http.StatusBadRequest, "Validation failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func isValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var validationErrors = []error{
	check.ErrBuyerRequired,
	check.ErrBadPrincipal,
	check.ErrBadRate,
	check.ErrDateOrder,
	check.ErrUnknownReferrer,
	check.ErrBadCode,
	check.ErrBadHorizon,
	check.ErrReferrerName,
	calendar.ErrInvalidDate,
	interest.ErrBadMonths,
	interest.ErrBadGrace,
}
