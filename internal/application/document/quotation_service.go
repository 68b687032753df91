package document

import (
	"context"

	"github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/infrastructure/scheduler"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuotationService handles quotation business operations
type QuotationService struct {
	repo           document.QuotationRepository
	numbers        document.NumberGenerator
	recomputes     *scheduler.RecomputeScheduler
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(repo document.QuotationRepository, numbers document.NumberGenerator, recomputes *scheduler.RecomputeScheduler, logger *zap.Logger) *QuotationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationService{
		repo:       repo,
		numbers:    numbers,
		recomputes: recomputes,
		logger:     logger,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *QuotationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new quotation in Draft status with its lines valued
func (s *QuotationService) Create(ctx context.Context, req CreateQuotationRequest) (*QuotationResponse, error) {
	number, err := s.numbers.NextQuotationNumber(ctx)
	if err != nil {
		return nil, err
	}

	q, err := document.NewQuotation(number, req.CustomerID, req.CustomerName)
	if err != nil {
		return nil, err
	}

	for _, in := range req.Items {
		if _, err := q.AddItem(in.Description, coerce(in.Quantity), coerce(in.UnitPrice), coerce(in.DiscountPercent), coerce(in.TaxRatePercent)); err != nil {
			return nil, err
		}
	}
	for _, in := range req.Services {
		if _, err := q.AddService(in.Description, coerce(in.Quantity), coerce(in.UnitPrice), coerce(in.DiscountPercent), coerce(in.TaxRatePercent)); err != nil {
			return nil, err
		}
	}
	if req.Transport != nil {
		in := *req.Transport
		if _, err := q.SetTransportCharge(in.Description, coerce(in.Quantity), coerce(in.UnitPrice), coerce(in.DiscountPercent), coerce(in.TaxRatePercent)); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		if err := q.SetValidUntil(req.ValidUntil); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		q.SetNotes(req.Notes)
	}

	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	s.publishEvents(q)

	s.logger.Info("quotation created",
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("grand_total", q.Totals.GrandTotal.String()))

	resp := ToQuotationResponse(q)
	return &resp, nil
}

// UpdateLine applies a line edit and persists the refreshed totals
func (s *QuotationService) UpdateLine(ctx context.Context, quotationID, lineID uuid.UUID, req UpdateLineRequest) (*QuotationResponse, error) {
	q, err := s.repo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	if err := q.UpdateLine(lineID, req.Quantity, req.UnitPrice, req.DiscountPercent, req.TaxRatePercent); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}

	resp := ToQuotationResponse(q)
	return &resp, nil
}

// ScheduleRecalculate coalesces a burst of interactive edits into a single
// recompute-and-save. Each call cancels the previous pending recompute for
// the quotation, so only the latest state is ever recomputed.
func (s *QuotationService) ScheduleRecalculate(ctx context.Context, quotationID uuid.UUID) {
	s.recomputes.Schedule(quotationID, func() {
		q, err := s.repo.FindByID(ctx, quotationID)
		if err != nil {
			s.logger.Error("recompute load failed", zap.String("quotation_id", quotationID.String()), zap.Error(err))
			return
		}
		q.RecalculateTotals()
		if err := s.repo.Save(ctx, q); err != nil {
			s.logger.Error("recompute save failed", zap.String("quotation_id", quotationID.String()), zap.Error(err))
		}
	})
}

// MarkSent transitions Draft -> Sent
func (s *QuotationService) MarkSent(ctx context.Context, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.applyAction(ctx, quotationID, func(q *document.Quotation) error { return q.MarkSent() })
}

// Accept transitions Sent -> Accepted
func (s *QuotationService) Accept(ctx context.Context, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.applyAction(ctx, quotationID, func(q *document.Quotation) error { return q.Accept() })
}

// Reject transitions Sent -> Rejected
func (s *QuotationService) Reject(ctx context.Context, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.applyAction(ctx, quotationID, func(q *document.Quotation) error { return q.Reject() })
}

// Present returns the read-only print view of a quotation
func (s *QuotationService) Present(ctx context.Context, quotationID uuid.UUID) (*PresentationView, error) {
	q, err := s.repo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	view := Present(q.Totals)
	return &view, nil
}

func (s *QuotationService) applyAction(ctx context.Context, quotationID uuid.UUID, action func(*document.Quotation) error) (*QuotationResponse, error) {
	q, err := s.repo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	if err := action(q); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	s.publishEvents(q)

	resp := ToQuotationResponse(q)
	return &resp, nil
}

func (s *QuotationService) publishEvents(q *document.Quotation) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(q.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish quotation events", zap.Error(err))
	}
	q.ClearDomainEvents()
}
