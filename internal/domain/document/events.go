package document

import (
	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeQuotation     = "Quotation"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Event type constants
const (
	EventTypeQuotationCreated           = "QuotationCreated"
	EventTypeQuotationStatusChanged     = "QuotationStatusChanged"
	EventTypePurchaseOrderCreated       = "PurchaseOrderCreated"
	EventTypePurchaseOrderStatusChanged = "PurchaseOrderStatusChanged"
)

// QuotationCreatedEvent is raised when a new quotation is created
type QuotationCreatedEvent struct {
	shared.BaseDomainEvent
	QuotationID     uuid.UUID `json:"quotation_id"`
	QuotationNumber string    `json:"quotation_number"`
	CustomerID      uuid.UUID `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
}

// NewQuotationCreatedEvent creates a new QuotationCreatedEvent
func NewQuotationCreatedEvent(q *Quotation) *QuotationCreatedEvent {
	return &QuotationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationCreated, AggregateTypeQuotation, q.ID),
		QuotationID:     q.ID,
		QuotationNumber: q.QuotationNumber,
		CustomerID:      q.CustomerID,
		CustomerName:    q.CustomerName,
	}
}

// QuotationStatusChangedEvent is raised on every successful lifecycle transition
type QuotationStatusChangedEvent struct {
	shared.BaseDomainEvent
	QuotationID     uuid.UUID         `json:"quotation_id"`
	QuotationNumber string            `json:"quotation_number"`
	Action          QuotationAction   `json:"action"`
	Status          QuotationStatus   `json:"status"`
	GrandTotal      valueobject.Money `json:"grand_total"`
}

// NewQuotationStatusChangedEvent creates a new QuotationStatusChangedEvent
func NewQuotationStatusChangedEvent(q *Quotation, action QuotationAction) *QuotationStatusChangedEvent {
	return &QuotationStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationStatusChanged, AggregateTypeQuotation, q.ID),
		QuotationID:     q.ID,
		QuotationNumber: q.QuotationNumber,
		Action:          action,
		Status:          q.Status,
		GrandTotal:      q.Totals.GrandTotal,
	}
}

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	PONumber     string    `json:"po_number"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, po.ID),
		OrderID:         po.ID,
		PONumber:        po.PONumber,
		SupplierID:      po.SupplierID,
		SupplierName:    po.SupplierName,
	}
}

// PurchaseOrderStatusChangedEvent is raised on every successful lifecycle transition
type PurchaseOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID           `json:"order_id"`
	PONumber   string              `json:"po_number"`
	Action     PurchaseOrderAction `json:"action"`
	Status     PurchaseOrderStatus `json:"status"`
	GrandTotal valueobject.Money   `json:"grand_total"`
}

// NewPurchaseOrderStatusChangedEvent creates a new PurchaseOrderStatusChangedEvent
func NewPurchaseOrderStatusChangedEvent(po *PurchaseOrder, action PurchaseOrderAction) *PurchaseOrderStatusChangedEvent {
	return &PurchaseOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderStatusChanged, AggregateTypePurchaseOrder, po.ID),
		OrderID:         po.ID,
		PONumber:        po.PONumber,
		Action:          action,
		Status:          po.Status,
		GrandTotal:      po.Totals.GrandTotal,
	}
}
