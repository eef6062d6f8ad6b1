// Package cli implements the vasfood command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vasfood/vasfood-cli/internal/app"
	"github.com/vasfood/vasfood-cli/internal/config"
	"github.com/vasfood/vasfood-cli/internal/logger"
	"github.com/vasfood/vasfood-cli/internal/session"
)

// toastNotifier prints one-time notices to stderr, standing in for the
// toast presentation a UI would render.
type toastNotifier struct{}

func (toastNotifier) Notify(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}

// NewRootCmd builds the command tree. The app is composed once in
// PersistentPreRunE so every subcommand shares the same credential store
// and refresh coordinator.
func NewRootCmd() *cobra.Command {
	// Subcommand trees define their own PersistentPreRunE guard checks,
	// which would otherwise suppress the root hook that composes the app.
	cobra.EnableTraverseRunHooks = true

	var a *app.App

	root := &cobra.Command{
		Use:           "vasfood",
		Short:         "Order and manage staff lunches from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a, err = app.New(cfg, logger.New(), toastNotifier{})
			return err
		},
	}

	appRef := func() *app.App { return a }

	root.AddCommand(
		newSignupCmd(appRef),
		newLoginCmd(appRef),
		newLogoutCmd(appRef),
		newVerifyCmd(appRef),
		newResetPasswordCmd(appRef),
		newWhoamiCmd(appRef),
		newOrderCmd(appRef),
		newMenuCmd(appRef),
		newAdminCmd(appRef),
	)

	return root
}

// Execute runs the CLI and maps guard errors to user guidance
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			fmt.Fprintln(os.Stderr, "You are not logged in. Run `vasfood login` first.")
		case errors.Is(err, session.ErrForbidden):
			// The guard already surfaced the access-denied notice once.
		default:
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
