package recovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// StartScheduler runs a batch sweep every interval until StopScheduler is called
func (s *recoveryService) StartScheduler(ctx context.Context, interval time.Duration, limit int) error {
	s.schedulerMutex.Lock()
	defer s.schedulerMutex.Unlock()

	if interval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	if s.isSchedulerRunning {
		return fmt.Errorf("sweep scheduler already running")
	}

	s.isSchedulerRunning = true
	s.schedulerStopChan = make(chan struct{})

	s.logger.Info("🚀 Starting sweep scheduler",
		zap.Duration("interval", interval),
		zap.Int("limit", limit),
	)

	s.schedulerWg.Add(1)
	go s.sweepLoop(ctx, interval, limit)

	return nil
}

// StopScheduler stops the loop and waits for an in-flight sweep to finish
func (s *recoveryService) StopScheduler() error {
	s.schedulerMutex.Lock()
	defer s.schedulerMutex.Unlock()

	if !s.isSchedulerRunning {
		return fmt.Errorf("sweep scheduler not running")
	}

	s.logger.Info("🛑 Stopping sweep scheduler...")

	close(s.schedulerStopChan)
	s.schedulerWg.Wait()
	s.isSchedulerRunning = false

	s.logger.Info("✅ Sweep scheduler stopped")
	return nil
}

func (s *recoveryService) sweepLoop(ctx context.Context, interval time.Duration, limit int) {
	defer s.schedulerWg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.schedulerStopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx, SweepRequest{Mode: ModeBatch, Limit: limit}); err != nil {
				s.logger.Error("❌ Scheduled sweep failed", zap.Error(err))
			}
		}
	}
}
