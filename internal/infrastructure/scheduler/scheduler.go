// Package scheduler runs the subscription expiry sweep on a fixed interval.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/api/metrics"
	"github.com/pickmymaid/content-api/internal/core/service"
)

// Sweeper is satisfied by service.SweepService.
type Sweeper interface {
	Run(ctx context.Context) (service.SweepResult, error)
}

// Scheduler fires the sweep at every multiple of interval (UTC), so a 24h interval
// runs at midnight.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func New(sweeper Sweeper, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start launches the loop; it stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Wait blocks until the loop has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("subscription sweep scheduled")
	for {
		timer := time.NewTimer(s.untilNext())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

func (s *Scheduler) untilNext() time.Duration {
	now := s.now()
	return now.Truncate(s.interval).Add(s.interval).Sub(now)
}

// RunOnce executes a single sweep and records its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	start := time.Now()
	res, err := s.sweeper.Run(ctx)
	metrics.SweepDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.SweepRunsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("subscription sweep failed")
	case res.Skipped:
		metrics.SweepRunsTotal.WithLabelValues("skipped").Inc()
	default:
		metrics.SweepRunsTotal.WithLabelValues("ok").Inc()
		metrics.SubscriptionsExpiredTotal.Add(float64(res.Expired))
	}
}
