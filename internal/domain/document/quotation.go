package document

import (
	"fmt"
	"time"

	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusRejected QuotationStatus = "Rejected"
	QuotationStatusExpired  QuotationStatus = "Expired"
)

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted,
		QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further action is legal from this status
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusAccepted || s == QuotationStatusRejected || s == QuotationStatusExpired
}

// QuotationAction is a user- or system-initiated lifecycle action
type QuotationAction string

const (
	QuotationActionMarkSent QuotationAction = "markSent"
	QuotationActionAccept   QuotationAction = "accept"
	QuotationActionReject   QuotationAction = "reject"
	QuotationActionExpire   QuotationAction = "expire" // time-based trigger, not a user action
)

// quotationTransitions is the full table of legal (status, action) -> status
// transitions. Any pair not present is rejected; there is no fall-through to
// a default status.
var quotationTransitions = map[QuotationStatus]map[QuotationAction]QuotationStatus{
	QuotationStatusDraft: {
		QuotationActionMarkSent: QuotationStatusSent,
		QuotationActionExpire:   QuotationStatusExpired,
	},
	QuotationStatusSent: {
		QuotationActionAccept: QuotationStatusAccepted,
		QuotationActionReject: QuotationStatusRejected,
		QuotationActionExpire: QuotationStatusExpired,
	},
}

// NextStatus resolves the transition table for an action. Returns the target
// status, or an error when the action is not legal from this status.
func (s QuotationStatus) NextStatus(action QuotationAction) (QuotationStatus, error) {
	if targets, ok := quotationTransitions[s]; ok {
		if next, ok := targets[action]; ok {
			return next, nil
		}
	}
	return "", shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("Action %q is not allowed for quotation in %s status", action, s))
}

// CanTransitionTo checks if any action leads from this status to the target
func (s QuotationStatus) CanTransitionTo(target QuotationStatus) bool {
	for _, next := range quotationTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Quotation represents a price quotation aggregate root for a DG set
// enquiry. Line edits are allowed only while the quotation is in Draft;
// afterwards the state machine gates which actions are legal.
type Quotation struct {
	shared.BaseAggregateRoot
	QuotationNumber string          `json:"quotation_number"` // assigned externally, opaque to the engine
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	Items           []LineItem      `json:"items"`
	Services        []LineItem      `json:"services"`
	TransportCharge *LineItem       `json:"transport_charge,omitempty"`
	Totals          DocumentTotals  `json:"totals"`
	Status          QuotationStatus `json:"status"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	Notes           string          `json:"notes"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	AcceptedAt      *time.Time      `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	ExpiredAt       *time.Time      `json:"expired_at,omitempty"`
}

// NewQuotation creates a quotation in Draft status with zero totals
func NewQuotation(quotationNumber string, customerID uuid.UUID, customerName string) (*Quotation, error) {
	if quotationNumber == "" {
		return nil, shared.NewDomainError("INVALID_QUOTATION_NUMBER", "Quotation number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	q := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		QuotationNumber:   quotationNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             make([]LineItem, 0),
		Services:          make([]LineItem, 0),
		Status:            QuotationStatusDraft,
		Totals:            ComputeTotals(nil, nil, nil),
	}

	q.AddDomainEvent(NewQuotationCreatedEvent(q))

	return q, nil
}

// CanModify returns true if line items may still be edited
func (q *Quotation) CanModify() bool {
	return q.Status == QuotationStatusDraft
}

// AddItem adds a product line. Only allowed in Draft status.
func (q *Quotation) AddItem(description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	return q.addLine(LineKindItem, description, quantity, unitPrice, discountPercent, taxRatePercent)
}

// AddService adds a service line. Only allowed in Draft status.
func (q *Quotation) AddService(description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	return q.addLine(LineKindService, description, quantity, unitPrice, discountPercent, taxRatePercent)
}

func (q *Quotation) addLine(kind LineKind, description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if !q.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a quotation in %s status", q.Status))
	}

	line, err := NewLineItem(kind, description, quantity, unitPrice, discountPercent, taxRatePercent)
	if err != nil {
		return nil, err
	}

	switch kind {
	case LineKindService:
		q.Services = append(q.Services, *line)
	default:
		q.Items = append(q.Items, *line)
	}
	q.RecalculateTotals()
	q.touch()

	return line, nil
}

// SetTransportCharge sets or replaces the single optional transport charge.
// Only allowed in Draft status.
func (q *Quotation) SetTransportCharge(description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if !q.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a quotation in %s status", q.Status))
	}

	line, err := NewLineItem(LineKindTransport, description, quantity, unitPrice, discountPercent, taxRatePercent)
	if err != nil {
		return nil, err
	}

	q.TransportCharge = line
	q.RecalculateTotals()
	q.touch()

	return line, nil
}

// RemoveTransportCharge clears the transport charge. Only allowed in Draft.
func (q *Quotation) RemoveTransportCharge() error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a quotation in %s status", q.Status))
	}

	q.TransportCharge = nil
	q.RecalculateTotals()
	q.touch()

	return nil
}

// UpdateLine updates the raw inputs of a line by ID and refreshes totals.
// A nil field keeps its current value. Only allowed in Draft status.
func (q *Quotation) UpdateLine(lineID uuid.UUID, quantity, unitPrice, discountPercent, taxRatePercent *decimal.Decimal) error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a quotation in %s status", q.Status))
	}

	line := q.findLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Line item not found")
	}
	if err := line.Update(quantity, unitPrice, discountPercent, taxRatePercent); err != nil {
		return err
	}
	q.RecalculateTotals()
	q.touch()

	return nil
}

// RemoveLine removes an item or service line by ID. Only allowed in Draft.
func (q *Quotation) RemoveLine(lineID uuid.UUID) error {
	if !q.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a quotation in %s status", q.Status))
	}

	for idx := range q.Items {
		if q.Items[idx].ID == lineID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			q.RecalculateTotals()
			q.touch()
			return nil
		}
	}
	for idx := range q.Services {
		if q.Services[idx].ID == lineID {
			q.Services = append(q.Services[:idx], q.Services[idx+1:]...)
			q.RecalculateTotals()
			q.touch()
			return nil
		}
	}
	if q.TransportCharge != nil && q.TransportCharge.ID == lineID {
		return q.RemoveTransportCharge()
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Line item not found")
}

// RecalculateTotals recomputes every line and the document-level figures
func (q *Quotation) RecalculateTotals() {
	q.Totals = ComputeTotals(q.Items, q.Services, q.TransportCharge)
}

// SetValidUntil sets the validity date used by the expiry trigger
func (q *Quotation) SetValidUntil(validUntil *time.Time) error {
	if q.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify validity of a quotation in terminal status")
	}
	q.ValidUntil = validUntil
	q.touch()
	return nil
}

// SetNotes sets the free-form notes
func (q *Quotation) SetNotes(notes string) {
	q.Notes = notes
	q.touch()
}

// Apply executes a lifecycle action against the transition table. On
// success the status (and the matching timestamp) is updated; on rejection
// the quotation is left untouched.
func (q *Quotation) Apply(action QuotationAction) error {
	next, err := q.Status.NextStatus(action)
	if err != nil {
		return err
	}

	now := time.Now()
	q.Status = next
	switch next {
	case QuotationStatusSent:
		q.SentAt = &now
	case QuotationStatusAccepted:
		q.AcceptedAt = &now
	case QuotationStatusRejected:
		q.RejectedAt = &now
	case QuotationStatusExpired:
		q.ExpiredAt = &now
	}
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuotationStatusChangedEvent(q, action))

	return nil
}

// MarkSent transitions Draft -> Sent
func (q *Quotation) MarkSent() error {
	if len(q.Items) == 0 && len(q.Services) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send a quotation without line items")
	}
	return q.Apply(QuotationActionMarkSent)
}

// Accept transitions Sent -> Accepted
func (q *Quotation) Accept() error {
	return q.Apply(QuotationActionAccept)
}

// Reject transitions Sent -> Rejected
func (q *Quotation) Reject() error {
	return q.Apply(QuotationActionReject)
}

// Expire transitions a non-terminal quotation to Expired. Invoked by the
// time-based expiry trigger, never by a user action.
func (q *Quotation) Expire() error {
	return q.Apply(QuotationActionExpire)
}

// IsExpiredBy returns true if the validity date has passed at the given
// instant and the quotation is still in a non-terminal status
func (q *Quotation) IsExpiredBy(now time.Time) bool {
	if q.Status.IsTerminal() || q.ValidUntil == nil {
		return false
	}
	return now.After(*q.ValidUntil)
}

// LineCount returns the number of lines across all three collections
func (q *Quotation) LineCount() int {
	n := len(q.Items) + len(q.Services)
	if q.TransportCharge != nil {
		n++
	}
	return n
}

func (q *Quotation) findLine(lineID uuid.UUID) *LineItem {
	for idx := range q.Items {
		if q.Items[idx].ID == lineID {
			return &q.Items[idx]
		}
	}
	for idx := range q.Services {
		if q.Services[idx].ID == lineID {
			return &q.Services[idx]
		}
	}
	if q.TransportCharge != nil && q.TransportCharge.ID == lineID {
		return q.TransportCharge
	}
	return nil
}

func (q *Quotation) touch() {
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
}
