package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/ledger"
)

// ErrPasswordRejected is returned by password verify on a mismatch.
var ErrPasswordRejected = errors.New("password does not match")

func newPasswordCommand(opts *rootOptions) *cobra.Command {
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Set, change or check the password",
	}

	setCmd := &cobra.Command{
		Use:   "set <password> <confirm>",
		Short: "Set the first password",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if a.session.State().Configured() {
				return errors.New("a password is already set; use password change")
			}
			if err := ledger.CheckNewPassword(args[0], args[1]); err != nil {
				return err
			}
			if err := a.session.SetPassword(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password set")
			return nil
		}),
	}

	changeCmd := &cobra.Command{
		Use:   "change <current> <new> <confirm>",
		Short: "Change the password",
		Args:  cobra.ExactArgs(3),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.session.ChangePassword(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		}),
	}

	verifyCmd := &cobra.Command{
		Use:   "verify <password>",
		Short: "Exit non-zero unless the password matches",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if !a.session.VerifyPassword(args[0]) {
				return ErrPasswordRejected
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password OK")
			return nil
		}),
	}

	passwordCmd.AddCommand(setCmd, changeCmd, verifyCmd)
	return passwordCmd
}
