package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/config"
	"github.com/expensenote/expensenote/internal/ledger"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var password string
	var confirm string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set the password and write a config file",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return runInit(cmd, opts, a, password, confirm)
		}),
	}

	cmd.Flags().StringVar(&password, "password", "", "new password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the password (required)")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}

func runInit(cmd *cobra.Command, opts *rootOptions, a *app, password, confirm string) error {
	if a.session.State().Configured() {
		return errors.New("already initialized; use password change to replace the password")
	}
	if err := ledger.CheckNewPassword(password, confirm); err != nil {
		return err
	}

	// Keep an existing config file as written.
	path := opts.path()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(path, a.cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	if err := a.session.SetPassword(cmd.Context(), password); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger (%s storage at %s)\n", a.cfg.Storage.Backend, a.cfg.Storage.Path)
	return nil
}
