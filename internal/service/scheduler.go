package service

import (
	"context"
	"sync"

	"lol-overlay/internal/credential"
	"lol-overlay/internal/domain"
	"lol-overlay/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// State is the scheduler's position in its refresh/recovery loop.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateSuccess
	StateFailed
	StateRecovering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	case StateRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// Builder produces one snapshot per cycle.
type Builder interface {
	Build(ctx context.Context) (*domain.Snapshot, error)
}

// SnapshotWriter persists a successfully built snapshot.
type SnapshotWriter interface {
	Write(snapshot *domain.Snapshot) error
}

// CredentialRecoverer is the operator-assisted repair path: it blocks
// until a new key is supplied (true) or the attempt is abandoned (false).
type CredentialRecoverer interface {
	RequestNewCredential(ctx context.Context) (string, bool)
}

// CredentialStore persists a replacement key for future restarts.
type CredentialStore interface {
	Store(ctx context.Context, key string) error
}

// Scheduler drives the refresh loop: one immediate cycle at start, then
// one per cadence tick. A fatal cycle leaves the last written snapshot
// untouched and runs credential recovery; a recovered key is retried
// immediately rather than waiting for the next tick.
type Scheduler struct {
	builder   Builder
	writer    SnapshotWriter
	cred      *credential.Credential
	credStore CredentialStore
	recoverer CredentialRecoverer
	metrics   *metrics.Metrics
	cadence   backoff.BackOff
	clock     clockwork.Clock
	logger    zerolog.Logger

	mu    sync.Mutex
	state State

	kick chan struct{}
}

func NewScheduler(
	builder Builder,
	writer SnapshotWriter,
	cred *credential.Credential,
	credStore CredentialStore,
	recoverer CredentialRecoverer,
	m *metrics.Metrics,
	cadence backoff.BackOff,
	clock clockwork.Clock,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		builder:   builder,
		writer:    writer,
		cred:      cred,
		credStore: credStore,
		recoverer: recoverer,
		metrics:   m,
		cadence:   cadence,
		clock:     clock,
		logger:    logger,
		state:     StateIdle,
		kick:      make(chan struct{}, 1),
	}
}

// Run blocks until ctx is cancelled. Termination is only by external
// signal; upstream failures are absorbed by the recovery path.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().Msg("scheduler started")

	for {
		s.runCycle(ctx)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := s.cadence.NextBackOff()
		if wait == backoff.Stop {
			s.logger.Info().Msg("cadence exhausted, scheduler stopping")
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopping")
			return ctx.Err()
		case <-s.clock.After(wait):
		case <-s.kick:
			s.logger.Info().Msg("forced refresh requested")
		}
	}
}

// ForceRefresh schedules an immediate out-of-band cycle. Non-blocking; a
// refresh already pending is not queued twice.
func (s *Scheduler) ForceRefresh() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// runCycle polls until the cycle succeeds or recovery is abandoned. The
// inner loop exists because a freshly supplied key is retried at once; an
// abandoned recovery defers to the next tick instead of nagging again.
func (s *Scheduler) runCycle(ctx context.Context) {
	cycleID, _ := gonanoid.New(8)
	logger := s.logger.With().Str("cycle_id", cycleID).Logger()

	for {
		if ctx.Err() != nil {
			return
		}

		s.setState(StatePolling)
		start := s.clock.Now()
		logger.Info().Msg("refreshing stats")

		snapshot, err := s.builder.Build(ctx)
		s.metrics.CycleDuration.Observe(s.clock.Since(start).Seconds())

		if err == nil {
			if writeErr := s.writer.Write(snapshot); writeErr != nil {
				logger.Error().Err(writeErr).Msg("failed to write snapshot")
				s.metrics.Cycles.WithLabelValues("failure").Inc()
				s.setState(StateFailed)
				return
			}
			s.metrics.Cycles.WithLabelValues("success").Inc()
			s.metrics.LastSuccessTime.Set(float64(s.clock.Now().Unix()))
			s.setState(StateSuccess)
			logger.Info().Int64("last_update", snapshot.LastUpdate).Msg("stats updated")
			s.setState(StateIdle)
			return
		}

		logger.Error().Err(err).Msg("cycle failed, last snapshot left in place")
		s.metrics.Cycles.WithLabelValues("failure").Inc()
		s.setState(StateFailed)

		if !s.recover(ctx, logger) {
			s.setState(StateIdle)
			return
		}
	}
}

// recover runs the blocking credential-recovery collaborator. It returns
// true when a new key was supplied and the cycle should retry now.
func (s *Scheduler) recover(ctx context.Context, logger zerolog.Logger) bool {
	s.setState(StateRecovering)
	s.metrics.Recoveries.Inc()
	logger.Warn().Msg("requesting new credential")

	key, ok := s.recoverer.RequestNewCredential(ctx)
	if !ok {
		logger.Warn().Msg("credential recovery abandoned, waiting for next tick")
		return false
	}

	s.cred.Set(key)
	if err := s.credStore.Store(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("failed to persist new credential")
	}

	logger.Info().Msg("new credential installed, retrying immediately")
	return true
}
