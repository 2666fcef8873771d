package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iho/finwise/internal/infrastructure/credentials"
)

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-db",
		Short: "Store database credentials in the secure keyfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := credentials.NewStore(a.host, a.logger)
			prompter := credentials.NewTerminalPrompter(a.in, a.out)

			result, err := store.Setup(prompter)
			if errors.Is(err, credentials.ErrSetupDeclined) {
				fmt.Fprintln(a.out, "Setup cancelled; existing credentials kept.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Credentials saved to %s\n", result.Path)
			if result.LegacyRemoved {
				fmt.Fprintln(a.out, "Legacy keyfile removed.")
			}
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Show where database credentials are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := credentials.NewStore(a.host, a.logger).Check()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Credential directory: %s\n", status.Dir)
			fmt.Fprintf(a.out, "Credential file:      %s\n", status.Path)
			if status.Exists {
				fmt.Fprintln(a.out, "Status:               present")
			} else {
				fmt.Fprintln(a.out, "Status:               missing (run `finwise setup-db`)")
			}
			if status.LegacyExists {
				fmt.Fprintf(a.out, "Legacy keyfile:       %s (deprecated)\n", status.LegacyPath)
			}
			return nil
		},
	}
}
