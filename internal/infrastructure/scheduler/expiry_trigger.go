package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpiryTriggerConfig holds configuration for the quotation expiry trigger
type ExpiryTriggerConfig struct {
	// CheckInterval is how often to sweep for quotations past their
	// validity date
	CheckInterval time.Duration
}

// DefaultExpiryTriggerConfig returns the default sweep configuration
func DefaultExpiryTriggerConfig() ExpiryTriggerConfig {
	return ExpiryTriggerConfig{
		CheckInterval: time.Minute,
	}
}

// ExpiryTrigger is the time-based trigger that moves quotations past their
// validity date into Expired. This is the only path into Expired; it is
// never a user action.
type ExpiryTrigger struct {
	config    ExpiryTriggerConfig
	repo      document.QuotationRepository
	publisher shared.EventPublisher
	logger    *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewExpiryTrigger creates a new expiry trigger
func NewExpiryTrigger(config ExpiryTriggerConfig, repo document.QuotationRepository, logger *zap.Logger) *ExpiryTrigger {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultExpiryTriggerConfig().CheckInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpiryTrigger{
		config: config,
		repo:   repo,
		logger: logger,
	}
}

// SetEventPublisher sets the publisher for expiry domain events
func (t *ExpiryTrigger) SetEventPublisher(publisher shared.EventPublisher) {
	t.publisher = publisher
}

// Start begins the periodic sweep. Returns immediately; the sweep runs in
// the background until Stop is called or the context is cancelled.
func (t *ExpiryTrigger) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})

	go t.run(ctx)

	t.logger.Info("quotation expiry trigger started",
		zap.Duration("check_interval", t.config.CheckInterval))
}

// Stop halts the sweep and waits for the current run to finish
func (t *ExpiryTrigger) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stopCh)
	done := t.doneCh
	t.mu.Unlock()

	<-done
	t.logger.Info("quotation expiry trigger stopped")
}

func (t *ExpiryTrigger) run(ctx context.Context) {
	defer close(t.doneCh)

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		case <-ticker.C:
			if err := t.Sweep(ctx); err != nil {
				t.logger.Error("expiry sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep expires every non-terminal quotation whose validity date has passed.
// Exported so callers can force a sweep outside the ticker cadence.
func (t *ExpiryTrigger) Sweep(ctx context.Context) error {
	candidates, err := t.repo.FindExpiredCandidates(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	expired := 0
	for idx := range candidates {
		q := &candidates[idx]
		if !q.IsExpiredBy(now) {
			continue
		}
		if err := q.Expire(); err != nil {
			// Already terminal by the time we got here; skip, don't abort
			t.logger.Warn("skipping quotation that cannot expire",
				zap.String("quotation_number", q.QuotationNumber),
				zap.String("status", q.Status.String()),
				zap.Error(err))
			continue
		}
		if err := t.repo.Save(ctx, q); err != nil {
			return err
		}
		if t.publisher != nil {
			if err := t.publisher.Publish(q.GetDomainEvents()...); err != nil {
				t.logger.Error("failed to publish expiry events", zap.Error(err))
			}
			q.ClearDomainEvents()
		}
		expired++
	}

	if expired > 0 {
		t.logger.Info("expired quotations", zap.Int("count", expired))
	}
	return nil
}
