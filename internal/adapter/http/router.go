package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finwise/internal/adapter/http/handler"
	"github.com/iho/finwise/internal/adapter/http/middleware"
	"github.com/iho/finwise/internal/infrastructure/metrics"
	"github.com/iho/finwise/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PartyHandler       *handler.PartyHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	ReceiptHandler     *handler.ReceiptHandler
	TransferHandler    *handler.TransferHandler
	HealthHandler      *handler.HealthHandler

	// IdempotencyStore is optional; without it Idempotency-Key is ignored.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/parties", func(r chi.Router) {
			r.Post("/", cfg.PartyHandler.Create)
			r.Get("/{id}", cfg.PartyHandler.Get)
			r.Delete("/{id}", cfg.PartyHandler.Delete)
			r.Get("/{id}/references", cfg.PartyHandler.References)
			r.Get("/{id}/balance", cfg.AccountHandler.PartyBalance)
			r.Get("/{id}/accounts", cfg.AccountHandler.ListByParty)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Put("/{id}/balance", cfg.AccountHandler.UpdateBalance)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", cfg.ReceiptHandler.Create)
			r.Get("/{id}", cfg.ReceiptHandler.Get)
			r.Delete("/{id}", cfg.ReceiptHandler.Delete)
		})

		r.Route("/transfers", func(r chi.Router) {
			if cfg.IdempotencyStore != nil {
				idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger, cfg.Metrics)
				r.Use(idempotency.Wrap)
			}
			r.Post("/", cfg.TransferHandler.Create)
		})
	})

	return r
}
