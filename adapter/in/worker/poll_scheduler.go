// Package worker runs background schedulers.
package worker

import (
	"context"
	"time"

	"tripscan/core/port/in"
	"tripscan/pkg/logger"
)

// =============================================================================
// PollScheduler - periodic inbox scan across all connected users
// =============================================================================

const (
	DefaultPollInterval = 5 * time.Minute

	// pollRunTimeout bounds one full PollAll sweep.
	pollRunTimeout = 10 * time.Minute

	// startupDelay lets the server settle before the first sweep.
	startupDelay = 15 * time.Second
)

type PollScheduler struct {
	polls    in.PollService
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPollScheduler creates a new poll scheduler.
func NewPollScheduler(polls in.PollService, interval time.Duration) *PollScheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PollScheduler{
		polls:    polls,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the poll scheduler.
func (s *PollScheduler) Start() {
	logger.Info("[PollScheduler] Starting with interval %s", s.interval)
	go s.run()
}

// Stop stops the poll scheduler.
func (s *PollScheduler) Stop() {
	logger.Info("[PollScheduler] Stopping...")
	s.cancel()
}

// run is the main loop.
func (s *PollScheduler) run() {
	select {
	case <-s.ctx.Done():
		return
	case <-time.After(startupDelay):
	}

	s.pollOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			logger.Info("[PollScheduler] Stopped")
			return
		case <-ticker.C:
			s.pollOnce()
		}
	}
}

func (s *PollScheduler) pollOnce() {
	ctx, cancel := context.WithTimeout(s.ctx, pollRunTimeout)
	defer cancel()

	started := time.Now()
	processed, err := s.polls.PollAll(ctx)
	if err != nil {
		logger.Error("[PollScheduler] Poll run failed: %v", err)
		return
	}
	if processed > 0 {
		logger.WithDuration(time.Since(started)).Info("[PollScheduler] Poll run processed %d messages", processed)
	}
}

// SetInterval sets the poll interval (for testing).
func (s *PollScheduler) SetInterval(interval time.Duration) {
	s.interval = interval
}
