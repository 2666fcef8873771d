package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpAdapter "github.com/iho/finwise/internal/adapter/http"
	"github.com/iho/finwise/internal/adapter/http/handler"
	postgresRepo "github.com/iho/finwise/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finwise/internal/adapter/repository/redis"
	"github.com/iho/finwise/internal/infrastructure/metrics"
	"github.com/iho/finwise/internal/infrastructure/postgres"
	"github.com/iho/finwise/internal/infrastructure/redis"
	"github.com/iho/finwise/internal/usecase"
)

func newServerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Serve the ledger over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, a)
		},
	}
}

func runServer(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	m.PoolMaxSize.Set(float64(cfg.DatabasePoolSize))

	pool, desc, err := openDatabase(ctx, a, postgres.WithObserver(m))
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := postgres.NewMigrator(desc.URL, log).Up(); err != nil {
			return err
		}
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		defer redisClient.Close()
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	partyRepo := postgresRepo.NewPartyRepository()
	accountRepo := postgresRepo.NewAccountRepository()
	transactionRepo := postgresRepo.NewTransactionRepository()
	receiptRepo := postgresRepo.NewReceiptRepository()

	// Initialize use cases
	partyUC := usecase.NewPartyUseCase(txManager, partyRepo, m)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, partyRepo, m)
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, partyRepo, m)
	receiptUC := usecase.NewReceiptUseCase(txManager, receiptRepo, partyRepo, m)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, partyRepo, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PartyHandler:       handler.NewPartyHandler(partyUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		ReceiptHandler:     handler.NewReceiptHandler(receiptUC),
		TransferHandler:    handler.NewTransferHandler(transferUC, postgresRepo.NewRetrier(postgresRepo.RetryPolicyFromConfig(cfg), log, m)),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             log,
		Metrics:            m,
		Gatherer:           reg,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
