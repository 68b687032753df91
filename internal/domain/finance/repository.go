package finance

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRecordRepository defines the interface for the externally-owned
// payment ledger. The engine never fetches, caches, or persists records
// itself; it only derives settlements from what this contract returns.
type PaymentRecordRepository interface {
	// FindByDocument returns the payment records for one document
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]PaymentRecord, error)

	// Save persists a newly created payment record
	Save(ctx context.Context, record *PaymentRecord) error
}
