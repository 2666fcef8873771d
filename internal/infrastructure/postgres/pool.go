package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrPool is the kind for every pool failure: bad descriptor,
	// unreachable server, exhaustion.
	ErrPool = errors.New("connection pool error")
	// ErrPoolExhausted means no connection freed up within the acquire timeout.
	ErrPoolExhausted = fmt.Errorf("%w: no connection available within timeout", ErrPool)
)

// Checkout outcomes reported to the Observer.
const (
	OutcomeOK        = "ok"
	OutcomeExhausted = "exhausted"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// Config sizes the pool.
type Config struct {
	DatabaseURL    string
	MaxSize        int
	AcquireTimeout time.Duration
}

// Observer receives pool usage signals, typically for metrics.
type Observer interface {
	ObserveCheckout(outcome string, wait time.Duration)
	SetPoolInUse(n int)
}

// Option configures a Pool.
type Option func(*Pool)

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(p *Pool) { p.observer = o }
}

type conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Release()
}

type source interface {
	Acquire(ctx context.Context) (conn, error)
	Close()
}

type pgxSource struct {
	pool *pgxpool.Pool
}

func (s pgxSource) Acquire(ctx context.Context) (conn, error) {
	c, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s pgxSource) Close() { s.pool.Close() }

// Pool bounds the number of simultaneously checked-out connections to
// MaxSize. A checkout beyond that waits up to AcquireTimeout for a release
// and then fails with ErrPoolExhausted. It is safe for concurrent use.
type Pool struct {
	src      source
	sem      *semaphore.Weighted
	maxSize  int
	timeout  time.Duration
	inUse    atomic.Int64
	observer Observer
	logger   zerolog.Logger
}

// NewPool connects to the database described by cfg and verifies it with a
// ping. All failures wrap ErrPool.
func NewPool(ctx context.Context, cfg Config, logger zerolog.Logger, opts ...Option) (*Pool, error) {
	if cfg.MaxSize < 1 || cfg.MaxSize > math.MaxInt32 {
		return nil, fmt.Errorf("%w: max size must be between 1 and %d, got %d", ErrPool, math.MaxInt32, cfg.MaxSize)
	}

	pgxCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse database URL: %w", ErrPool, err)
	}

	pgxCfg.MaxConns = int32(cfg.MaxSize)
	pgxCfg.MinConns = 0

	pp, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create connection pool: %w", ErrPool, err)
	}

	p := newPoolWithSource(pgxSource{pool: pp}, cfg, logger, opts...)

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

func newPoolWithSource(src source, cfg Config, logger zerolog.Logger, opts ...Option) *Pool {
	p := &Pool{
		src:     src,
		sem:     semaphore.NewWeighted(int64(cfg.MaxSize)),
		maxSize: cfg.MaxSize,
		timeout: cfg.AcquireTimeout,
		logger:  logger.With().Str("component", "pool").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Checkout hands out an exclusive connection. The caller must Release it.
// If ctx ends while waiting, ctx.Err() is returned instead of
// ErrPoolExhausted.
func (p *Pool) Checkout(ctx context.Context) (*Handle, error) {
	start := time.Now()

	if err := p.acquirePermit(ctx); err != nil {
		outcome := OutcomeExhausted
		if !errors.Is(err, ErrPoolExhausted) {
			outcome = OutcomeCanceled
		} else {
			p.logger.Warn().
				Int("max_size", p.maxSize).
				Dur("timeout", p.timeout).
				Msg("connection pool exhausted")
		}
		p.observe(outcome, time.Since(start))
		return nil, err
	}

	c, err := p.src.Acquire(ctx)
	if err != nil {
		p.sem.Release(1)
		p.observe(OutcomeError, time.Since(start))
		return nil, fmt.Errorf("%w: failed to acquire connection: %w", ErrPool, err)
	}

	n := p.inUse.Add(1)
	p.observe(OutcomeOK, time.Since(start))
	if p.observer != nil {
		p.observer.SetPoolInUse(int(n))
	}

	return &Handle{pool: p, conn: c}, nil
}

func (p *Pool) acquirePermit(ctx context.Context) error {
	if p.timeout <= 0 {
		if p.sem.TryAcquire(1) {
			return nil
		}
		return ErrPoolExhausted
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.sem.Acquire(waitCtx, 1); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return ErrPoolExhausted
	}
	return nil
}

func (p *Pool) release() {
	p.sem.Release(1)
	n := p.inUse.Add(-1)
	if p.observer != nil {
		p.observer.SetPoolInUse(int(n))
	}
}

func (p *Pool) observe(outcome string, wait time.Duration) {
	if p.observer != nil {
		p.observer.ObserveCheckout(outcome, wait)
	}
}

// Begin checks out a connection and starts a transaction on it. The
// connection goes back to the pool when the transaction commits or rolls
// back.
func (p *Pool) Begin(ctx context.Context) (pgx.Tx, error) {
	h, err := p.Checkout(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := h.Begin(ctx)
	if err != nil {
		h.Release()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &handleTx{Tx: tx, handle: h}, nil
}

// Ping checks out a connection and round-trips to the server.
func (p *Pool) Ping(ctx context.Context) error {
	h, err := p.Checkout(ctx)
	if err != nil {
		return err
	}
	defer h.Release()

	if err := h.conn.Ping(ctx); err != nil {
		return fmt.Errorf("%w: failed to ping database: %w", ErrPool, err)
	}
	return nil
}

// Close closes all connections.
func (p *Pool) Close() {
	p.src.Close()
}

// PoolStats is a point-in-time view of pool usage.
type PoolStats struct {
	MaxSize        int
	InUse          int
	AcquireTimeout time.Duration
}

// Stats reports current usage.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		MaxSize:        p.maxSize,
		InUse:          int(p.inUse.Load()),
		AcquireTimeout: p.timeout,
	}
}

// Handle is an exclusive checked-out connection.
type Handle struct {
	pool *Pool
	conn conn
	once sync.Once
}

// Begin starts a transaction on the handle's connection.
func (h *Handle) Begin(ctx context.Context) (pgx.Tx, error) {
	return h.conn.Begin(ctx)
}

// Release returns the connection to the pool. Extra calls do nothing.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.conn.Release()
		h.pool.release()
	})
}

type handleTx struct {
	pgx.Tx
	handle *Handle
}

func (t *handleTx) Commit(ctx context.Context) error {
	defer t.handle.Release()
	return t.Tx.Commit(ctx)
}

func (t *handleTx) Rollback(ctx context.Context) error {
	defer t.handle.Release()
	return t.Tx.Rollback(ctx)
}
