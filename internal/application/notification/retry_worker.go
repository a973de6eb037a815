package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultRetryInterval  = 5 * time.Minute
	defaultRetryBatchSize = 50
)

// RetryWorker periodically picks up pending deliveries that failed and
// tries them again until the attempt limit is reached.
type RetryWorker struct {
	interval    time.Duration
	batchSize   int
	channelRepo notification.ChannelRepository
	logRepo     notification.DeliveryLogRepository
	sender      ChannelSender
	logger      *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewRetryWorker creates a new RetryWorker
func NewRetryWorker(
	interval time.Duration,
	channelRepo notification.ChannelRepository,
	logRepo notification.DeliveryLogRepository,
	sender ChannelSender,
	logger *zap.Logger,
) *RetryWorker {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	return &RetryWorker{
		interval:    interval,
		batchSize:   defaultRetryBatchSize,
		channelRepo: channelRepo,
		logRepo:     logRepo,
		sender:      sender,
		logger:      logger,
	}
}

// Start begins the retry loop
func (w *RetryWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return nil
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.isRunning = true

	w.wg.Add(1)
	go w.runLoop(ctx)

	w.logger.Info("delivery retry worker started", zap.Duration("interval", w.interval))
	return nil
}

// Stop halts the retry loop, waiting for an in-flight pass to finish
func (w *RetryWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.cancel()
	w.isRunning = false
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *RetryWorker) runLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.Error("delivery retry pass failed", zap.Error(err))
			}
		}
	}
}

// RunOnce retries one batch of pending deliveries
func (w *RetryWorker) RunOnce(ctx context.Context) error {
	logs, err := w.logRepo.FindRetryable(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		return nil
	}

	for i := range logs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.retry(ctx, &logs[i])
	}

	w.logger.Debug("delivery retry pass done", zap.Int("deliveries", len(logs)))
	return nil
}

func (w *RetryWorker) retry(ctx context.Context, log *notification.DeliveryLog) {
	channel, err := w.channelRepo.FindByID(ctx, log.ChannelID)
	if err != nil || !channel.Active {
		// Without a live channel the delivery can never succeed
		if err == nil {
			log.MarkFailed("channel is inactive")
		} else if errors.Is(err, shared.ErrNotFound) {
			log.MarkFailed("channel no longer exists")
		} else {
			w.logger.Error("failed to load channel for retry", zap.Error(err))
			return
		}
		if err := w.logRepo.Save(ctx, log); err != nil {
			w.logger.Error("failed to save delivery log", zap.Error(err))
		}
		return
	}

	if err := w.sender.Send(ctx, channel, log.EventType, log.Payload); err != nil {
		log.MarkFailed(err.Error())
	} else {
		log.MarkSent()
	}
	if err := w.logRepo.Save(ctx, log); err != nil {
		w.logger.Error("failed to save delivery log", zap.Error(err))
	}
}
