package document

import (
	"context"

	"github.com/google/uuid"
)

// QuotationRepository defines the interface for quotation persistence.
// Persistence itself is an external collaborator; the engine only consumes
// this contract.
type QuotationRepository interface {
	// FindByID finds a quotation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)

	// FindByNumber finds a quotation by its document number
	FindByNumber(ctx context.Context, quotationNumber string) (*Quotation, error)

	// FindByStatus finds quotations in the given status
	FindByStatus(ctx context.Context, status QuotationStatus) ([]Quotation, error)

	// FindExpiredCandidates finds non-terminal quotations whose validity
	// date has passed; used by the expiry trigger
	FindExpiredCandidates(ctx context.Context) ([]Quotation, error)

	// Save creates or updates a quotation
	Save(ctx context.Context, q *Quotation) error
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByNumber finds a purchase order by its document number
	FindByNumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)

	// FindByStatus finds purchase orders in the given status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order
	Save(ctx context.Context, po *PurchaseOrder) error
}

// NumberGenerator produces the next document number from the external
// sequence-generation endpoint. The engine treats the result as an opaque
// string.
type NumberGenerator interface {
	// NextQuotationNumber returns the next quotation number
	NextQuotationNumber(ctx context.Context) (string, error)

	// NextPONumber returns the next purchase order number
	NextPONumber(ctx context.Context) (string, error)
}
