package finance

import (
	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AggregateTypePaymentLedger identifies the document's payment ledger
const AggregateTypePaymentLedger = "PaymentLedger"

// EventTypePaymentRecorded is raised when a payment is recorded against a document
const EventTypePaymentRecorded = "PaymentRecorded"

// PaymentRecordedEvent is raised for every successfully recorded payment
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID         `json:"payment_id"`
	DocumentID    uuid.UUID         `json:"document_id"`
	Amount        valueobject.Money `json:"amount"`
	Method        PaymentMethod     `json:"method"`
	ReceiptNumber string            `json:"receipt_number"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(record *PaymentRecord) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypePaymentLedger, record.DocumentID),
		PaymentID:       record.ID,
		DocumentID:      record.DocumentID,
		Amount:          record.Amount,
		Method:          record.Method,
		ReceiptNumber:   record.ReceiptNumber,
	}
}
