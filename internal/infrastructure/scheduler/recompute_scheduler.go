package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDebounceWindow is the window within which a burst of line edits is
// coalesced into a single recompute
const DefaultDebounceWindow = 150 * time.Millisecond

// RecomputeScheduler coalesces rapid successive document edits into a single
// totals recomputation. Scheduling a new recompute for a document atomically
// cancels any pending one, so only the latest state's totals are ever
// computed. There is one pending handle per document, never a queue.
type RecomputeScheduler struct {
	window time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	pending map[uuid.UUID]*time.Timer
	stopped bool
}

// NewRecomputeScheduler creates a scheduler with the given debounce window.
// A non-positive window falls back to the default.
func NewRecomputeScheduler(window time.Duration, logger *zap.Logger) *RecomputeScheduler {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecomputeScheduler{
		window:  window,
		logger:  logger,
		pending: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule registers a recompute for the document. Any recompute already
// pending for the same document is cancelled, not queued; the new one fires
// after the debounce window elapses without further edits.
func (s *RecomputeScheduler) Schedule(documentID uuid.UUID, recompute func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if timer, ok := s.pending[documentID]; ok {
		timer.Stop()
	}

	s.pending[documentID] = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		delete(s.pending, documentID)
		s.mu.Unlock()

		s.logger.Debug("recompute fired", zap.String("document_id", documentID.String()))
		recompute()
	})
}

// Cancel drops any pending recompute for the document
func (s *RecomputeScheduler) Cancel(documentID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.pending[documentID]; ok {
		timer.Stop()
		delete(s.pending, documentID)
	}
}

// PendingCount returns the number of documents with a recompute pending
func (s *RecomputeScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels all pending recomputes and rejects further scheduling
func (s *RecomputeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
	s.stopped = true
}
