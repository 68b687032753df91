package document

import (
	"context"

	"github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/infrastructure/scheduler"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	repo           document.PurchaseOrderRepository
	numbers        document.NumberGenerator
	recomputes     *scheduler.RecomputeScheduler
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(repo document.PurchaseOrderRepository, numbers document.NumberGenerator, recomputes *scheduler.RecomputeScheduler, logger *zap.Logger) *PurchaseOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseOrderService{
		repo:       repo,
		numbers:    numbers,
		recomputes: recomputes,
		logger:     logger,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new purchase order in draft status with its lines valued
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	number, err := s.numbers.NextPONumber(ctx)
	if err != nil {
		return nil, err
	}

	po, err := document.NewPurchaseOrder(number, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, err
	}

	for _, in := range req.Items {
		if _, err := po.AddItem(in.Description, coerce(in.Quantity), coerce(in.UnitPrice), coerce(in.DiscountPercent), coerce(in.TaxRatePercent)); err != nil {
			return nil, err
		}
	}
	for _, in := range req.Services {
		if _, err := po.AddService(in.Description, coerce(in.Quantity), coerce(in.UnitPrice), coerce(in.DiscountPercent), coerce(in.TaxRatePercent)); err != nil {
			return nil, err
		}
	}
	if req.Transport != nil {
		in := *req.Transport
		if _, err := po.SetTransportCharge(in.Description, coerce(in.Quantity), coerce(in.UnitPrice), coerce(in.DiscountPercent), coerce(in.TaxRatePercent)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		po.SetNotes(req.Notes)
	}

	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(po)

	s.logger.Info("purchase order created",
		zap.String("po_number", po.PONumber),
		zap.String("grand_total", po.Totals.GrandTotal.String()))

	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// UpdateLine applies a line edit and persists the refreshed totals
func (s *PurchaseOrderService) UpdateLine(ctx context.Context, orderID, lineID uuid.UUID, req UpdateLineRequest) (*PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := po.UpdateLine(lineID, req.Quantity, req.UnitPrice, req.DiscountPercent, req.TaxRatePercent); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}

	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// ScheduleRecalculate coalesces a burst of interactive edits into a single
// recompute-and-save, cancelling any recompute already pending for the order
func (s *PurchaseOrderService) ScheduleRecalculate(ctx context.Context, orderID uuid.UUID) {
	s.recomputes.Schedule(orderID, func() {
		po, err := s.repo.FindByID(ctx, orderID)
		if err != nil {
			s.logger.Error("recompute load failed", zap.String("order_id", orderID.String()), zap.Error(err))
			return
		}
		po.RecalculateTotals()
		if err := s.repo.Save(ctx, po); err != nil {
			s.logger.Error("recompute save failed", zap.String("order_id", orderID.String()), zap.Error(err))
		}
	})
}

// Send transitions draft -> sent
func (s *PurchaseOrderService) Send(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.applyAction(ctx, orderID, func(po *document.PurchaseOrder) error { return po.Send() })
}

// Confirm transitions sent -> confirmed
func (s *PurchaseOrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.applyAction(ctx, orderID, func(po *document.PurchaseOrder) error { return po.Confirm() })
}

// Cancel transitions sent -> cancelled with a reason
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	return s.applyAction(ctx, orderID, func(po *document.PurchaseOrder) error { return po.Cancel(reason) })
}

// Receive transitions confirmed -> received
func (s *PurchaseOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.applyAction(ctx, orderID, func(po *document.PurchaseOrder) error { return po.Receive() })
}

// PartiallyReceive transitions confirmed -> partially_received
func (s *PurchaseOrderService) PartiallyReceive(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.applyAction(ctx, orderID, func(po *document.PurchaseOrder) error { return po.PartiallyReceive() })
}

// Present returns the read-only print view of a purchase order
func (s *PurchaseOrderService) Present(ctx context.Context, orderID uuid.UUID) (*PresentationView, error) {
	po, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := Present(po.Totals)
	return &view, nil
}

func (s *PurchaseOrderService) applyAction(ctx context.Context, orderID uuid.UUID, action func(*document.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := action(po); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}
	s.publishEvents(po)

	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

func (s *PurchaseOrderService) publishEvents(po *document.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(po.GetDomainEvents()...); err != nil {
		s.logger.Error("failed to publish purchase order events", zap.Error(err))
	}
	po.ClearDomainEvents()
}
