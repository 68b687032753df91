package document

import (
	"fmt"
	"time"

	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent              PurchaseOrderStatus = "sent"
	PurchaseOrderStatusConfirmed         PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusReceived, PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further action is legal from this status
func (s PurchaseOrderStatus) IsTerminal() bool {
	_, hasActions := purchaseOrderTransitions[s]
	return !hasActions
}

// PurchaseOrderAction is a lifecycle action against a purchase order
type PurchaseOrderAction string

const (
	PurchaseOrderActionSend             PurchaseOrderAction = "send"
	PurchaseOrderActionConfirm          PurchaseOrderAction = "confirm"
	PurchaseOrderActionCancel           PurchaseOrderAction = "cancel"
	PurchaseOrderActionReceive          PurchaseOrderAction = "receive"
	PurchaseOrderActionPartiallyReceive PurchaseOrderAction = "partiallyReceive"
)

// purchaseOrderTransitions is the full table of legal (status, action) ->
// status transitions. Any pair not present is rejected. Note that a
// partially received order has no further transitions in this table; it is
// closed out by the external goods-receipt process, not by the engine.
var purchaseOrderTransitions = map[PurchaseOrderStatus]map[PurchaseOrderAction]PurchaseOrderStatus{
	PurchaseOrderStatusDraft: {
		PurchaseOrderActionSend: PurchaseOrderStatusSent,
	},
	PurchaseOrderStatusSent: {
		PurchaseOrderActionConfirm: PurchaseOrderStatusConfirmed,
		PurchaseOrderActionCancel:  PurchaseOrderStatusCancelled,
	},
	PurchaseOrderStatusConfirmed: {
		PurchaseOrderActionReceive:          PurchaseOrderStatusReceived,
		PurchaseOrderActionPartiallyReceive: PurchaseOrderStatusPartiallyReceived,
	},
}

// NextStatus resolves the transition table for an action. Returns the target
// status, or an error when the action is not legal from this status.
func (s PurchaseOrderStatus) NextStatus(action PurchaseOrderAction) (PurchaseOrderStatus, error) {
	if targets, ok := purchaseOrderTransitions[s]; ok {
		if next, ok := targets[action]; ok {
			return next, nil
		}
	}
	return "", shared.NewDomainError(shared.CodeInvalidTransition,
		fmt.Sprintf("Action %q is not allowed for purchase order in %s status", action, s))
}

// CanTransitionTo checks if any action leads from this status to the target
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	for _, next := range purchaseOrderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// PurchaseOrder represents a purchase order aggregate root for procuring DG
// sets and spares from a supplier. It shares the valuation engine with
// Quotation but has its own lifecycle.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber        string              `json:"po_number"` // assigned externally, opaque to the engine
	SupplierID      uuid.UUID           `json:"supplier_id"`
	SupplierName    string              `json:"supplier_name"`
	Items           []LineItem          `json:"items"`
	Services        []LineItem          `json:"services"`
	TransportCharge *LineItem           `json:"transport_charge,omitempty"`
	Totals          DocumentTotals      `json:"totals"`
	Status          PurchaseOrderStatus `json:"status"`
	Notes           string              `json:"notes"`
	SentAt          *time.Time          `json:"sent_at,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ReceivedAt      *time.Time          `json:"received_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
}

// NewPurchaseOrder creates a purchase order in draft status with zero totals
func NewPurchaseOrder(poNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Items:             make([]LineItem, 0),
		Services:          make([]LineItem, 0),
		Status:            PurchaseOrderStatusDraft,
		Totals:            ComputeTotals(nil, nil, nil),
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// CanModify returns true if line items may still be edited
func (po *PurchaseOrder) CanModify() bool {
	return po.Status == PurchaseOrderStatusDraft
}

// AddItem adds a product line. Only allowed in draft status.
func (po *PurchaseOrder) AddItem(description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	return po.addLine(LineKindItem, description, quantity, unitPrice, discountPercent, taxRatePercent)
}

// AddService adds a service line. Only allowed in draft status.
func (po *PurchaseOrder) AddService(description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	return po.addLine(LineKindService, description, quantity, unitPrice, discountPercent, taxRatePercent)
}

func (po *PurchaseOrder) addLine(kind LineKind, description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if !po.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a purchase order in %s status", po.Status))
	}

	line, err := NewLineItem(kind, description, quantity, unitPrice, discountPercent, taxRatePercent)
	if err != nil {
		return nil, err
	}

	switch kind {
	case LineKindService:
		po.Services = append(po.Services, *line)
	default:
		po.Items = append(po.Items, *line)
	}
	po.RecalculateTotals()
	po.touch()

	return line, nil
}

// SetTransportCharge sets or replaces the single optional transport charge.
// Only allowed in draft status.
func (po *PurchaseOrder) SetTransportCharge(description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if !po.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a purchase order in %s status", po.Status))
	}

	line, err := NewLineItem(LineKindTransport, description, quantity, unitPrice, discountPercent, taxRatePercent)
	if err != nil {
		return nil, err
	}

	po.TransportCharge = line
	po.RecalculateTotals()
	po.touch()

	return line, nil
}

// UpdateLine updates the raw inputs of a line by ID and refreshes totals.
// A nil field keeps its current value. Only allowed in draft status.
func (po *PurchaseOrder) UpdateLine(lineID uuid.UUID, quantity, unitPrice, discountPercent, taxRatePercent *decimal.Decimal) error {
	if !po.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a purchase order in %s status", po.Status))
	}

	line := po.findLine(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Line item not found")
	}
	if err := line.Update(quantity, unitPrice, discountPercent, taxRatePercent); err != nil {
		return err
	}
	po.RecalculateTotals()
	po.touch()

	return nil
}

// RemoveLine removes an item, service, or transport line by ID.
// Only allowed in draft status.
func (po *PurchaseOrder) RemoveLine(lineID uuid.UUID) error {
	if !po.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit lines of a purchase order in %s status", po.Status))
	}

	for idx := range po.Items {
		if po.Items[idx].ID == lineID {
			po.Items = append(po.Items[:idx], po.Items[idx+1:]...)
			po.RecalculateTotals()
			po.touch()
			return nil
		}
	}
	for idx := range po.Services {
		if po.Services[idx].ID == lineID {
			po.Services = append(po.Services[:idx], po.Services[idx+1:]...)
			po.RecalculateTotals()
			po.touch()
			return nil
		}
	}
	if po.TransportCharge != nil && po.TransportCharge.ID == lineID {
		po.TransportCharge = nil
		po.RecalculateTotals()
		po.touch()
		return nil
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Line item not found")
}

// RecalculateTotals recomputes every line and the document-level figures
func (po *PurchaseOrder) RecalculateTotals() {
	po.Totals = ComputeTotals(po.Items, po.Services, po.TransportCharge)
}

// SetNotes sets the free-form notes
func (po *PurchaseOrder) SetNotes(notes string) {
	po.Notes = notes
	po.touch()
}

// Apply executes a lifecycle action against the transition table. On
// success the status (and the matching timestamp) is updated; on rejection
// the order is left untouched.
func (po *PurchaseOrder) Apply(action PurchaseOrderAction) error {
	next, err := po.Status.NextStatus(action)
	if err != nil {
		return err
	}

	now := time.Now()
	po.Status = next
	switch next {
	case PurchaseOrderStatusSent:
		po.SentAt = &now
	case PurchaseOrderStatusConfirmed:
		po.ConfirmedAt = &now
	case PurchaseOrderStatusReceived:
		po.ReceivedAt = &now
	case PurchaseOrderStatusCancelled:
		po.CancelledAt = &now
	}
	po.UpdatedAt = now
	po.IncrementVersion()

	po.AddDomainEvent(NewPurchaseOrderStatusChangedEvent(po, action))

	return nil
}

// Send transitions draft -> sent. Requires at least one line.
func (po *PurchaseOrder) Send() error {
	if len(po.Items) == 0 && len(po.Services) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send a purchase order without line items")
	}
	return po.Apply(PurchaseOrderActionSend)
}

// Confirm transitions sent -> confirmed
func (po *PurchaseOrder) Confirm() error {
	return po.Apply(PurchaseOrderActionConfirm)
}

// Cancel transitions sent -> cancelled
func (po *PurchaseOrder) Cancel(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	if err := po.Apply(PurchaseOrderActionCancel); err != nil {
		return err
	}
	po.CancelReason = reason
	return nil
}

// Receive transitions confirmed -> received
func (po *PurchaseOrder) Receive() error {
	return po.Apply(PurchaseOrderActionReceive)
}

// PartiallyReceive transitions confirmed -> partially_received
func (po *PurchaseOrder) PartiallyReceive() error {
	return po.Apply(PurchaseOrderActionPartiallyReceive)
}

// LineCount returns the number of lines across all three collections
func (po *PurchaseOrder) LineCount() int {
	n := len(po.Items) + len(po.Services)
	if po.TransportCharge != nil {
		n++
	}
	return n
}

func (po *PurchaseOrder) findLine(lineID uuid.UUID) *LineItem {
	for idx := range po.Items {
		if po.Items[idx].ID == lineID {
			return &po.Items[idx]
		}
	}
	for idx := range po.Services {
		if po.Services[idx].ID == lineID {
			return &po.Services[idx]
		}
	}
	if po.TransportCharge != nil && po.TransportCharge.ID == lineID {
		return po.TransportCharge
	}
	return nil
}

func (po *PurchaseOrder) touch() {
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
}
