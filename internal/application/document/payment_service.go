package document

import (
	"context"
	"time"

	"github.com/dgsales/backend/internal/domain/finance"
	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService records payments and derives settlement figures for
// documents. The payment ledger itself is owned externally; this service
// only validates new records and reconciles what the repository returns.
type PaymentService struct {
	payments       finance.PaymentRecordRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payments finance.PaymentRecordRepository, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments: payments,
		logger:   logger,
	}
}

// SetEventPublisher sets the publisher for payment domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record validates and persists a new payment against a document. A
// non-positive amount is rejected here and never reaches the ledger.
func (s *PaymentService) Record(ctx context.Context, documentID uuid.UUID, req RecordPaymentRequest) (*finance.PaymentRecord, error) {
	record, err := finance.NewPaymentRecord(
		documentID,
		valueobject.NewMoney(req.Amount),
		req.Method,
		req.MethodDetails,
		req.PaymentDate,
		req.ReceiptNumber,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, record); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(finance.NewPaymentRecordedEvent(record)); err != nil {
			s.logger.Error("failed to publish payment event", zap.Error(err))
		}
	}

	s.logger.Info("payment recorded",
		zap.String("document_id", documentID.String()),
		zap.String("amount", record.Amount.String()),
		zap.String("method", record.Method.String()))

	return record, nil
}

// Settle fetches the document's ledger and reconciles it against the grand
// total, applying the Overdue override when a due date has passed
func (s *PaymentService) Settle(ctx context.Context, documentID uuid.UUID, grandTotal valueobject.Money, dueDate *time.Time) (*finance.Settlement, error) {
	records, err := s.payments.FindByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	settlement := finance.ReconcileWithDueDate(grandTotal, records, dueDate, time.Now())
	return &settlement, nil
}
