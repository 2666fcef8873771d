package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iho/finwise/internal/infrastructure/credentials"
	"github.com/iho/finwise/internal/infrastructure/postgres"
)

// openDatabase resolves credentials and opens the bounded pool.
func openDatabase(ctx context.Context, a *app, opts ...postgres.Option) (*postgres.Pool, credentials.Descriptor, error) {
	desc, err := credentials.NewStore(a.host, a.logger).Resolve()
	if err != nil {
		return nil, desc, err
	}

	pool, err := postgres.NewPool(ctx, postgres.Config{
		DatabaseURL:    desc.URL,
		MaxSize:        a.cfg.DatabasePoolSize,
		AcquireTimeout: a.cfg.AcquireTimeout(),
	}, a.logger, opts...)
	if err != nil {
		return nil, desc, fmt.Errorf("failed to connect to %s: %w", desc.Redacted(), err)
	}

	a.logger.Info().
		Str("source", string(desc.Source)).
		Str("database", desc.Redacted()).
		Int("pool_size", a.cfg.DatabasePoolSize).
		Msg("connected to postgres")

	return pool, desc, nil
}

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	run := func(apply func(*postgres.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			pool, desc, err := openDatabase(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer pool.Close()

			return apply(postgres.NewMigrator(desc.URL, a.logger))
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run((*postgres.Migrator).Up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run((*postgres.Migrator).Down),
		},
	)

	return cmd
}
