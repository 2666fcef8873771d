package main

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/finwise/internal/infrastructure/config"
	"github.com/iho/finwise/internal/infrastructure/credentials"
	"github.com/iho/finwise/internal/infrastructure/logger"
)

// app carries what every command needs. cfg and logger are filled in by the
// root command before any subcommand runs.
type app struct {
	host credentials.Host
	in   io.Reader
	out  io.Writer

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

func main() {
	a := &app{
		host:   credentials.OSHost{},
		in:     os.Stdin,
		out:    os.Stdout,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}

	if err := newRootCmd(a).Execute(); err != nil {
		a.logger.Error().Err(err).Msg("command failed")
		if errors.Is(err, credentials.ErrConfiguration) {
			a.logger.Info().Msg("run `finwise setup-db` to store database credentials")
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "finwise",
		Short:         "FinWise ledger service",
		Long:          `FinWise stores parties, accounts, transactions and receipts in PostgreSQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, closer, err := logger.New(logger.Config{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				File:   cfg.LogFile,
			})
			if err != nil {
				return err
			}

			a.cfg, a.logger, a.logCloser = cfg, log, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	root.AddCommand(
		newSetupCmd(a),
		newCheckCmd(a),
		newMigrateCmd(a),
		newServerCmd(a),
	)

	return root
}
