package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/iho/finwise/internal/infrastructure/config"
	"github.com/iho/finwise/internal/infrastructure/metrics"
)

// RetryPolicy bounds how a conflicted transfer is re-run.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// Budget caps the wall time spent across all attempts.
	Budget time.Duration
}

// RetryPolicyFromConfig reads the TRANSFER_* settings.
func RetryPolicyFromConfig(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		MaxRetries:      cfg.TransferMaxRetries,
		InitialInterval: cfg.TransferRetryInitial,
		MaxInterval:     cfg.TransferRetryMaxInterval,
		Budget:          cfg.TransferRetryBudget,
	}
}

// Retrier implements usecase.Retrier for transfers. Deadlocks and
// serialization failures abort the whole transaction, so the operation must
// begin a fresh one on every attempt. Anything else is returned at once.
type Retrier struct {
	policy  RetryPolicy
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewRetrier creates a Retrier. m may be nil.
func NewRetrier(policy RetryPolicy, logger zerolog.Logger, m *metrics.Metrics) *Retrier {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &Retrier{policy: policy, logger: logger, metrics: m}
}

func (r *Retrier) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if r.policy.InitialInterval > 0 {
		b.InitialInterval = r.policy.InitialInterval
	}
	if r.policy.MaxInterval > 0 {
		b.MaxInterval = r.policy.MaxInterval
	}
	b.MaxElapsedTime = r.policy.Budget
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.policy.MaxRetries)), ctx)
}

// Retry runs operation until it succeeds, fails with a non-conflict error,
// or the policy is exhausted. The last error is returned unwrapped.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	attempt := 0
	op := func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}
		if _, ok := conflictReason(err); !ok {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		reason, _ := conflictReason(err)
		r.metrics.RecordRetry(reason)
		r.logger.Warn().
			Err(err).
			Str("reason", reason).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("transfer conflicted, retrying")
	}

	return backoff.RetryNotify(op, r.newBackOff(ctx), notify)
}

// conflictReason labels errors that a fresh transaction may not hit again.
func conflictReason(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	switch pgErr.Code {
	case pgerrcode.DeadlockDetected:
		return "deadlock", true
	case pgerrcode.SerializationFailure:
		return "serialization_failure", true
	}
	return "", false
}
