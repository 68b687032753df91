package document

import (
	"time"

	"github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/finance"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Valuation DTOs ====================

// LineInput carries the raw numeric fields of one line across the engine
// boundary. Nil fields are missing values and coerce to zero, matching the
// behavior the surrounding forms rely on; negative values are rejected.
type LineInput struct {
	Description     string           `json:"description"`
	Quantity        *decimal.Decimal `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  *decimal.Decimal `json:"tax_rate_percent"`
}

// DocumentInput is a whole document payload submitted for valuation
type DocumentInput struct {
	Items           []LineInput `json:"items"`
	Services        []LineInput `json:"services"`
	TransportCharge *LineInput  `json:"transport_charge,omitempty"`
}

// LineResult is one valued line in a ValuationResult
type LineResult struct {
	Description string                 `json:"description"`
	Kind        document.LineKind      `json:"kind"`
	Valuation   document.LineValuation `json:"valuation"`
}

// ValuationResult is the document-level outcome of a boundary valuation
type ValuationResult struct {
	Items    []LineResult            `json:"items"`
	Services []LineResult            `json:"services"`
	Totals   document.DocumentTotals `json:"totals"`
}

// PresentationView is the read-only snapshot exposed for print/PDF: the
// numeric figures plus the words-converted grand total. The external
// renderer owns locale formatting; the engine only supplies values.
type PresentationView struct {
	Subtotal          valueobject.Money `json:"subtotal"`
	TotalDiscount     valueobject.Money `json:"total_discount"`
	TotalTax          valueobject.Money `json:"total_tax"`
	RoundOff          valueobject.Money `json:"round_off"`
	GrandTotal        valueobject.Money `json:"grand_total"`
	GrandTotalInWords string            `json:"grand_total_in_words"`
}

// ==================== Quotation DTOs ====================

// CreateQuotationRequest represents a request to create a quotation
type CreateQuotationRequest struct {
	CustomerID   uuid.UUID   `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	Items        []LineInput `json:"items"`
	Services     []LineInput `json:"services"`
	Transport    *LineInput  `json:"transport_charge,omitempty"`
	ValidUntil   *time.Time  `json:"valid_until,omitempty"`
	Notes        string      `json:"notes"`
}

// QuotationResponse is the persisted-document shape returned to callers
type QuotationResponse struct {
	ID              uuid.UUID                `json:"id"`
	QuotationNumber string                   `json:"quotation_number"`
	CustomerID      uuid.UUID                `json:"customer_id"`
	CustomerName    string                   `json:"customer_name"`
	Status          document.QuotationStatus `json:"status"`
	Items           []document.LineItem      `json:"items"`
	Services        []document.LineItem      `json:"services"`
	TransportCharge *document.LineItem       `json:"transport_charge,omitempty"`
	Totals          document.DocumentTotals  `json:"totals"`
	ValidUntil      *time.Time               `json:"valid_until,omitempty"`
	Notes           string                   `json:"notes"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ToQuotationResponse maps the aggregate to its response shape
func ToQuotationResponse(q *document.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		CustomerID:      q.CustomerID,
		CustomerName:    q.CustomerName,
		Status:          q.Status,
		Items:           q.Items,
		Services:        q.Services,
		TransportCharge: q.TransportCharge,
		Totals:          q.Totals,
		ValidUntil:      q.ValidUntil,
		Notes:           q.Notes,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID   `json:"supplier_id"`
	SupplierName string      `json:"supplier_name"`
	Items        []LineInput `json:"items"`
	Services     []LineInput `json:"services"`
	Transport    *LineInput  `json:"transport_charge,omitempty"`
	Notes        string      `json:"notes"`
}

// PurchaseOrderResponse is the persisted-document shape returned to callers
type PurchaseOrderResponse struct {
	ID              uuid.UUID                    `json:"id"`
	PONumber        string                       `json:"po_number"`
	SupplierID      uuid.UUID                    `json:"supplier_id"`
	SupplierName    string                       `json:"supplier_name"`
	Status          document.PurchaseOrderStatus `json:"status"`
	Items           []document.LineItem          `json:"items"`
	Services        []document.LineItem          `json:"services"`
	TransportCharge *document.LineItem           `json:"transport_charge,omitempty"`
	Totals          document.DocumentTotals      `json:"totals"`
	Notes           string                       `json:"notes"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// ToPurchaseOrderResponse maps the aggregate to its response shape
func ToPurchaseOrderResponse(po *document.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:              po.ID,
		PONumber:        po.PONumber,
		SupplierID:      po.SupplierID,
		SupplierName:    po.SupplierName,
		Status:          po.Status,
		Items:           po.Items,
		Services:        po.Services,
		TransportCharge: po.TransportCharge,
		Totals:          po.Totals,
		Notes:           po.Notes,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
}

// ==================== Line edit DTOs ====================

// UpdateLineRequest updates the raw inputs of one line; nil keeps the
// current value
type UpdateLineRequest struct {
	Quantity        *decimal.Decimal `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  *decimal.Decimal `json:"tax_rate_percent"`
}

// ==================== Payment DTOs ====================

// RecordPaymentRequest represents a request to record a payment against a
// document
type RecordPaymentRequest struct {
	Amount        decimal.Decimal              `json:"amount"`
	Method        finance.PaymentMethod        `json:"method"`
	MethodDetails finance.PaymentMethodDetails `json:"method_details"`
	PaymentDate   time.Time                    `json:"payment_date"`
	ReceiptNumber string                       `json:"receipt_number"`
	Notes         string                       `json:"notes"`
}
