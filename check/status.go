package check

import "github.com/daftar/check-engine/calendar"

// =============================================================================
// DISPLAY STATUS - Derived, never stored
// =============================================================================

// DisplayStatus classifies a check for presentation relative to a
// reference "today". Exactly one applies.
type DisplayStatus string

const (
	DisplayPaid     DisplayStatus = "paid"
	DisplayOverdue  DisplayStatus = "overdue"
	DisplayNearDue  DisplayStatus = "near-due"
	DisplayExtended DisplayStatus = "extended"
	DisplayActive   DisplayStatus = "active"
)

// NearDueWindow is the number of days before the due date at which a
// check counts as near-due.
const NearDueWindow = 10

// DeriveStatus applies the display-status priority order, first match wins:
// paid, overdue, near-due, extended, active.
func DeriveStatus(c *Check, today calendar.Date) DisplayStatus {
	if c.Status == StatusPaid {
		return DisplayPaid
	}
	left := calendar.Diff(today, c.End)
	switch {
	case left < 0:
		return DisplayOverdue
	case left <= NearDueWindow:
		return DisplayNearDue
	case c.ExtraDays > 0:
		return DisplayExtended
	default:
		return DisplayActive
	}
}
