package finance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentMethod represents the method of payment
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodBankTransfer,
		PaymentMethodUPI, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentMethodDetails carries the method-specific payload of a payment.
// Only the fields relevant to the method are populated.
type PaymentMethodDetails struct {
	ChequeNumber  string     `json:"cheque_number,omitempty"`
	ChequeDate    *time.Time `json:"cheque_date,omitempty"`
	BankName      string     `json:"bank_name,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	UPIReference  string     `json:"upi_reference,omitempty"`
	CardLast4     string     `json:"card_last4,omitempty"`
}

// PaymentRecord represents a single payment recorded against a document.
// Records are immutable once created; corrections require a new record
// through the external ledger process, never an in-place edit.
type PaymentRecord struct {
	ID            uuid.UUID            `json:"id"`
	DocumentID    uuid.UUID            `json:"document_id"`
	Amount        valueobject.Money    `json:"amount"`
	Method        PaymentMethod        `json:"method"`
	MethodDetails PaymentMethodDetails `json:"method_details"`
	PaymentDate   time.Time            `json:"payment_date"`
	ReceiptNumber string               `json:"receipt_number"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewPaymentRecord creates a payment record after validating the amount and
// method. A non-positive amount is rejected at creation, never summed.
func NewPaymentRecord(documentID uuid.UUID, amount valueobject.Money, method PaymentMethod, details PaymentMethodDetails, paymentDate time.Time, receiptNumber, notes string) (*PaymentRecord, error) {
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidPaymentAmount, "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &PaymentRecord{
		ID:            uuid.New(),
		DocumentID:    documentID,
		Amount:        amount,
		Method:        method,
		MethodDetails: details,
		PaymentDate:   paymentDate,
		ReceiptNumber: receiptNumber,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}, nil
}

// PaymentRecords is a slice of PaymentRecord that implements sql
// Scanner/Valuer for JSONB storage of a document's ledger
type PaymentRecords []PaymentRecord

// Value implements driver.Valuer to store the ledger as JSONB
func (p PaymentRecords) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner to read the ledger from JSONB
func (p *PaymentRecords) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentRecords{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentRecords: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentRecords{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// TotalAmount sums the ledger
func (p PaymentRecords) TotalAmount() valueobject.Money {
	total := valueobject.ZeroMoney()
	for idx := range p {
		total = total.Add(p[idx].Amount)
	}
	return total
}
