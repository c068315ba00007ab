// Package status implements the invoice lifecycle state machine:
// draft → sent → paid, with overdue as a derived overlay computed from
// the due date at day granularity.
package status

import (
	"time"

	"github.com/MathisL971/invoicegen/internal/invoice/domain"
)

// Actions accepted by the status-update surface. Unpaid is an action,
// not a stored state.
const (
	ActionDraft  = "draft"
	ActionSent   = "sent"
	ActionPaid   = "paid"
	ActionUnpaid = "unpaid"
)

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func pastDue(dueDate, today time.Time) bool {
	return truncateDay(dueDate).Before(truncateDay(today))
}

// IsOverdue reports whether the invoice is past due. Paid invoices are
// never overdue, regardless of due date.
func IsOverdue(dueDate time.Time, stored domain.InvoiceStatus, today time.Time) bool {
	if stored == domain.InvoiceStatusPaid {
		return false
	}
	return pastDue(dueDate, today)
}

// Display derives the status shown to the user: the overdue overlay wins
// over any stored value except paid.
func Display(dueDate time.Time, stored domain.InvoiceStatus, today time.Time) domain.InvoiceStatus {
	if IsOverdue(dueDate, stored, today) {
		return domain.InvoiceStatusOverdue
	}
	return stored
}

// NeedsReconcile reports whether the stored status should be refreshed to
// overdue by the background write-back.
func NeedsReconcile(dueDate time.Time, stored domain.InvoiceStatus, today time.Time) bool {
	return IsOverdue(dueDate, stored, today) &&
		stored != domain.InvoiceStatusOverdue
}

// Resolve maps a user action onto the next stored status.
//
// Marking unpaid does not restore the true prior state: a draft stays
// draft, anything else resolves to sent (or overdue when past due). This
// mirrors the historical behavior on purpose; see DESIGN.md.
func Resolve(action string, dueDate time.Time, current domain.InvoiceStatus, today time.Time) (domain.InvoiceStatus, error) {
	switch action {
	case ActionPaid:
		return domain.InvoiceStatusPaid, nil
	case ActionUnpaid:
		if pastDue(dueDate, today) {
			return domain.InvoiceStatusOverdue, nil
		}
		if current == domain.InvoiceStatusDraft {
			return domain.InvoiceStatusDraft, nil
		}
		return domain.InvoiceStatusSent, nil
	case ActionSent:
		if current != domain.InvoiceStatusDraft {
			return "", domain.ErrInvalidStatus
		}
		return domain.InvoiceStatusSent, nil
	case ActionDraft:
		return domain.InvoiceStatusDraft, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}
