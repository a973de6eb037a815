package receivable

import (
	"context"
	"sync"
	"time"

	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OverdueSweep periodically scans for documents that passed their due
// date since the last run and emits an overdue event for each, so
// notification channels can alert the collections team.
type OverdueSweep struct {
	interval     time.Duration
	documentRepo receivable.DocumentRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
}

// NewOverdueSweep creates a new OverdueSweep
func NewOverdueSweep(
	interval time.Duration,
	documentRepo receivable.DocumentRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OverdueSweep {
	if interval <= 0 {
		interval = time.Hour
	}
	return &OverdueSweep{
		interval:     interval,
		documentRepo: documentRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Start starts the sweep loop
func (s *OverdueSweep) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.lastRun = time.Now()
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Overdue sweep started", zap.Duration("interval", s.interval))

	return nil
}

// Stop stops the sweep loop
func (s *OverdueSweep) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweep stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OverdueSweep) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce sweeps for documents that became overdue since the last run.
// Exposed so an admin endpoint can force a sweep.
func (s *OverdueSweep) RunOnce(ctx context.Context) {
	s.mu.Lock()
	since := s.lastRun
	now := time.Now()
	s.lastRun = now
	s.mu.Unlock()

	documents, err := s.documentRepo.FindNewlyOverdue(ctx, since)
	if err != nil {
		s.logger.Error("Overdue sweep query failed", zap.Error(err))
		return
	}
	if len(documents) == 0 {
		return
	}

	events := make([]shared.DomainEvent, 0, len(documents))
	for i := range documents {
		events = append(events, receivable.NewDocumentOverdueEvent(&documents[i]))
	}

	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish overdue events", zap.Error(err))
		return
	}

	s.logger.Info("Overdue sweep completed",
		zap.Int("documents", len(documents)),
		zap.Time("since", since))
}
