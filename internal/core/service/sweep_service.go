package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pickmymaid/content-api/internal/core/ports"
)

const sweepLockKey = "lock:subscription-sweep"

// SweepResult describes one sweep run. Skipped is set when another instance held the lease.
type SweepResult struct {
	Expired int64
	Skipped bool
}

// SweepService marks overdue subscriptions as expired.
type SweepService struct {
	repo     ports.SubscriptionRepository
	locker   ports.Locker
	leaseFor time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewSweepService(repo ports.SubscriptionRepository, locker ports.Locker, lease time.Duration, logger zerolog.Logger) *SweepService {
	if lease <= 0 {
		lease = time.Hour
	}
	return &SweepService{
		repo:     repo,
		locker:   locker,
		leaseFor: lease,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one sweep. A successful run keeps the lease until its TTL runs out,
// so instances whose timers fire later in the same interval skip. A failed run
// releases it for a retry.
func (s *SweepService) Run(ctx context.Context) (SweepResult, error) {
	if s.locker != nil {
		ok, err := s.locker.Acquire(ctx, sweepLockKey, s.leaseFor)
		if err != nil {
			return SweepResult{}, err
		}
		if !ok {
			s.logger.Debug().Msg("subscription sweep skipped, lease held elsewhere")
			return SweepResult{Skipped: true}, nil
		}
	}

	n, err := s.repo.ExpireDue(ctx, s.now())
	if err != nil {
		s.releaseLease(ctx)
		return SweepResult{}, err
	}
	s.logger.Info().Int64("expired", n).Msg("subscription sweep finished")
	return SweepResult{Expired: n}, nil
}

func (s *SweepService) releaseLease(ctx context.Context) {
	if s.locker == nil {
		return
	}
	if err := s.locker.Release(context.WithoutCancel(ctx), sweepLockKey); err != nil {
		s.logger.Warn().Err(err).Msg("release sweep lease")
	}
}
