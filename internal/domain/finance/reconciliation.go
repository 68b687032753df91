package finance

import (
	"time"

	"github.com/dgsales/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the derived payment state of a document
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Settlement is the derived paid/remaining/status triple for a document's
// ledger. It is a pure function of the grand total and the payment records,
// except for the Overdue override which is time-based and applied
// explicitly.
type Settlement struct {
	GrandTotal      valueobject.Money `json:"grand_total"`
	PaidAmount      valueobject.Money `json:"paid_amount"`
	RemainingAmount valueobject.Money `json:"remaining_amount"`
	Status          PaymentStatus     `json:"status"`
}

// Reconcile aggregates the payment records against the document's grand
// total. RemainingAmount is clamped at zero; the status derivation is:
// Paid when nothing remains and something was paid, Partial when paid but
// not settled, Pending when nothing was paid.
func Reconcile(grandTotal valueobject.Money, records []PaymentRecord) Settlement {
	paid := PaymentRecords(records).TotalAmount()

	remaining := grandTotal.Subtract(paid)
	if remaining.IsNegative() {
		remaining = valueobject.ZeroMoney()
	}

	var status PaymentStatus
	switch {
	case remaining.IsZero() && paid.IsPositive():
		status = PaymentStatusPaid
	case paid.IsPositive():
		status = PaymentStatusPartial
	default:
		status = PaymentStatusPending
	}

	return Settlement{
		GrandTotal:      grandTotal,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		Status:          status,
	}
}

// MarkOverdue applies the time-based Overdue override. A settled document
// never becomes overdue; Overdue cannot be derived from amounts alone, so
// the caller decides when to apply it (typically from a due-date sweep).
func (s Settlement) MarkOverdue() Settlement {
	if s.Status == PaymentStatusPaid {
		return s
	}
	s.Status = PaymentStatusOverdue
	return s
}

// ReconcileWithDueDate reconciles the ledger and applies the Overdue
// override when the due date has passed and the document is not settled
func ReconcileWithDueDate(grandTotal valueobject.Money, records []PaymentRecord, dueDate *time.Time, now time.Time) Settlement {
	settlement := Reconcile(grandTotal, records)
	if dueDate != nil && now.After(*dueDate) {
		settlement = settlement.MarkOverdue()
	}
	return settlement
}

// IsSettled returns true if nothing remains to be paid
func (s Settlement) IsSettled() bool {
	return s.Status == PaymentStatusPaid
}
