package document

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaindoc "github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/infrastructure/scheduler"
)

func newQuotationFixture(t *testing.T) (*QuotationService, *memQuotationRepo, *scheduler.RecomputeScheduler) {
	t.Helper()
	repo := newMemQuotationRepo()
	recomputes := scheduler.NewRecomputeScheduler(20*time.Millisecond, nil)
	t.Cleanup(recomputes.Stop)
	svc := NewQuotationService(repo, &seqNumberGenerator{}, recomputes, nil)
	return svc, repo, recomputes
}

func draftQuotationRequest() CreateQuotationRequest {
	return CreateQuotationRequest{
		CustomerID:   uuid.New(),
		CustomerName: "Sharma Industries",
		Items: []LineInput{
			{Description: "125 kVA DG Set", Quantity: dp("2"), UnitPrice: dp("100000"),
				DiscountPercent: dp("10"), TaxRatePercent: dp("18")},
		},
	}
}

func TestQuotationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with generated number and totals", func(t *testing.T) {
		svc, repo, _ := newQuotationFixture(t)

		resp, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)

		assert.Equal(t, "QTN-2025-0001", resp.QuotationNumber)
		assert.Equal(t, domaindoc.QuotationStatusDraft, resp.Status)
		assert.Equal(t, "212400.00", resp.Totals.GrandTotal.String())

		saved, err := repo.FindByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, resp.QuotationNumber, saved.QuotationNumber)
	})

	t.Run("numbers are sequential across creates", func(t *testing.T) {
		svc, _, _ := newQuotationFixture(t)

		first, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)
		second, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)

		assert.Equal(t, "QTN-2025-0001", first.QuotationNumber)
		assert.Equal(t, "QTN-2025-0002", second.QuotationNumber)
	})

	t.Run("carries transport, validity and notes", func(t *testing.T) {
		svc, _, _ := newQuotationFixture(t)
		validUntil := time.Now().Add(15 * 24 * time.Hour)
		req := draftQuotationRequest()
		req.Transport = &LineInput{Description: "Freight", Quantity: dp("1"),
			UnitPrice: dp("5000"), TaxRatePercent: dp("18")}
		req.ValidUntil = &validUntil
		req.Notes = "Delivery within 3 weeks"

		resp, err := svc.Create(ctx, req)
		require.NoError(t, err)

		require.NotNil(t, resp.TransportCharge)
		assert.Equal(t, "218300.00", resp.Totals.GrandTotal.String())
		assert.Equal(t, "Delivery within 3 weeks", resp.Notes)
		require.NotNil(t, resp.ValidUntil)
	})

	t.Run("rejects a negative line at the boundary", func(t *testing.T) {
		svc, _, _ := newQuotationFixture(t)
		req := draftQuotationRequest()
		req.Items[0].UnitPrice = dp("-100000")

		_, err := svc.Create(ctx, req)
		assert.Error(t, err)
	})

	t.Run("publishes the created event", func(t *testing.T) {
		svc, _, _ := newQuotationFixture(t)
		publisher := &recordingPublisher{}
		svc.SetEventPublisher(publisher)

		_, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)

		assert.Contains(t, publisher.eventTypes(), domaindoc.EventTypeQuotationCreated)
	})
}

func TestQuotationService_UpdateLine(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newQuotationFixture(t)

	created, err := svc.Create(ctx, draftQuotationRequest())
	require.NoError(t, err)
	lineID := created.Items[0].ID

	t.Run("edit refreshes totals", func(t *testing.T) {
		resp, err := svc.UpdateLine(ctx, created.ID, lineID, UpdateLineRequest{Quantity: dp("3")})
		require.NoError(t, err)
		assert.Equal(t, "318600.00", resp.Totals.GrandTotal.String())
	})

	t.Run("unknown quotation", func(t *testing.T) {
		_, err := svc.UpdateLine(ctx, uuid.New(), lineID, UpdateLineRequest{Quantity: dp("1")})
		assert.Error(t, err)
	})

	t.Run("unknown line", func(t *testing.T) {
		_, err := svc.UpdateLine(ctx, created.ID, uuid.New(), UpdateLineRequest{Quantity: dp("1")})
		assert.Error(t, err)
	})
}

func TestQuotationService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("sent then accepted", func(t *testing.T) {
		svc, _, _ := newQuotationFixture(t)
		created, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)

		sent, err := svc.MarkSent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domaindoc.QuotationStatusSent, sent.Status)

		accepted, err := svc.Accept(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domaindoc.QuotationStatusAccepted, accepted.Status)
	})

	t.Run("reject straight from draft fails", func(t *testing.T) {
		svc, repo, _ := newQuotationFixture(t)
		created, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)

		_, err = svc.Reject(ctx, created.ID)

		require.Error(t, err)
		saved, findErr := repo.FindByID(ctx, created.ID)
		require.NoError(t, findErr)
		assert.Equal(t, domaindoc.QuotationStatusDraft, saved.Status)
	})

	t.Run("transition publishes a status change event", func(t *testing.T) {
		svc, _, _ := newQuotationFixture(t)
		publisher := &recordingPublisher{}
		svc.SetEventPublisher(publisher)
		created, err := svc.Create(ctx, draftQuotationRequest())
		require.NoError(t, err)

		_, err = svc.MarkSent(ctx, created.ID)
		require.NoError(t, err)

		assert.Contains(t, publisher.eventTypes(), domaindoc.EventTypeQuotationStatusChanged)
	})
}

func TestQuotationService_ScheduleRecalculate(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newQuotationFixture(t)

	created, err := svc.Create(ctx, draftQuotationRequest())
	require.NoError(t, err)

	// Simulate a stale stored total, then let the debounced recompute fix it
	repo.mu.Lock()
	repo.quotations[created.ID].Totals = domaindoc.DocumentTotals{}
	repo.mu.Unlock()

	svc.ScheduleRecalculate(ctx, created.ID)
	svc.ScheduleRecalculate(ctx, created.ID)

	require.Eventually(t, func() bool {
		saved, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			return false
		}
		return saved.Totals.GrandTotal.String() == "212400.00"
	}, time.Second, 5*time.Millisecond, "debounced recompute never restored the totals")
}

func TestQuotationService_Present(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newQuotationFixture(t)

	created, err := svc.Create(ctx, draftQuotationRequest())
	require.NoError(t, err)

	view, err := svc.Present(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "212400.00", view.GrandTotal.String())
	assert.Equal(t, "Two Lakh Twelve Thousand Four Hundred Rupees Only", view.GrandTotalInWords)

	_, err = svc.Present(ctx, uuid.New())
	assert.Error(t, err)
}
