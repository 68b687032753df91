package document

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	domaindoc "github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/finance"
	"github.com/dgsales/backend/internal/domain/shared"
)

// In-memory collaborators standing in for the external persistence and
// numbering services during service tests.

type memQuotationRepo struct {
	mu         sync.Mutex
	quotations map[uuid.UUID]*domaindoc.Quotation
	saveErr    error
}

func newMemQuotationRepo() *memQuotationRepo {
	return &memQuotationRepo{quotations: make(map[uuid.UUID]*domaindoc.Quotation)}
}

func (r *memQuotationRepo) FindByID(_ context.Context, id uuid.UUID) (*domaindoc.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return q, nil
}

func (r *memQuotationRepo) FindByNumber(_ context.Context, number string) (*domaindoc.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotations {
		if q.QuotationNumber == number {
			return q, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memQuotationRepo) FindByStatus(_ context.Context, status domaindoc.QuotationStatus) ([]domaindoc.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domaindoc.Quotation
	for _, q := range r.quotations {
		if q.Status == status {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *memQuotationRepo) FindExpiredCandidates(_ context.Context) ([]domaindoc.Quotation, error) {
	return nil, nil
}

func (r *memQuotationRepo) Save(_ context.Context, q *domaindoc.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.quotations[q.ID] = q
	return nil
}

type memPurchaseOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domaindoc.PurchaseOrder
}

func newMemPurchaseOrderRepo() *memPurchaseOrderRepo {
	return &memPurchaseOrderRepo{orders: make(map[uuid.UUID]*domaindoc.PurchaseOrder)}
}

func (r *memPurchaseOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domaindoc.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	po, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return po, nil
}

func (r *memPurchaseOrderRepo) FindByNumber(_ context.Context, number string) (*domaindoc.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, po := range r.orders {
		if po.PONumber == number {
			return po, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseOrderRepo) FindByStatus(_ context.Context, status domaindoc.PurchaseOrderStatus) ([]domaindoc.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domaindoc.PurchaseOrder
	for _, po := range r.orders {
		if po.Status == status {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *memPurchaseOrderRepo) Save(_ context.Context, po *domaindoc.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[po.ID] = po
	return nil
}

type seqNumberGenerator struct {
	mu         sync.Mutex
	quotations int
	orders     int
}

func (g *seqNumberGenerator) NextQuotationNumber(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.quotations++
	return fmt.Sprintf("QTN-2025-%04d", g.quotations), nil
}

func (g *seqNumberGenerator) NextPONumber(_ context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders++
	return fmt.Sprintf("PO-2025-%04d", g.orders), nil
}

type memPaymentRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID][]finance.PaymentRecord
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{records: make(map[uuid.UUID][]finance.PaymentRecord)}
}

func (r *memPaymentRepo) FindByDocument(_ context.Context, documentID uuid.UUID) ([]finance.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[documentID], nil
}

func (r *memPaymentRepo) Save(_ context.Context, record *finance.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.DocumentID] = append(r.records[record.DocumentID], *record)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}
