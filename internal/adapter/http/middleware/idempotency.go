package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/finwise/internal/infrastructure/metrics"
	"github.com/iho/finwise/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key instead of running the request again.
type IdempotencyMiddleware struct {
	store   usecase.IdempotencyStore
	ttl     time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. m may be nil.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, logger zerolog.Logger, m *metrics.Metrics) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger, metrics: m}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		rec, reserved, err := m.store.Reserve(r.Context(), key, m.ttl)
		m.metrics.RecordRedis("reserve", err)
		if err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("idempotency reserve failed")
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if !reserved {
			if rec.Pending {
				http.Error(w, "request with this idempotency key is in progress", http.StatusConflict)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			w.WriteHeader(rec.StatusCode)
			w.Write(rec.Body)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Settle the key even if the client disconnected.
		ctx := context.WithoutCancel(r.Context())

		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			err = m.store.Complete(ctx, key, usecase.IdempotencyRecord{
				StatusCode: recorder.statusCode,
				Body:       recorder.body.Bytes(),
			}, m.ttl)
			m.metrics.RecordRedis("complete", err)
		} else {
			err = m.store.Release(ctx, key)
			m.metrics.RecordRedis("release", err)
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to settle idempotency key")
		}
	})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
