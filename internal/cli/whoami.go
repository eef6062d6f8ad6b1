package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vasfood/vasfood-cli/internal/app"
	"github.com/vasfood/vasfood-cli/internal/auth"
	"github.com/vasfood/vasfood-cli/internal/session"
)

func newWhoamiCmd(a func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().Guard.RequireAuth(cmd.Context()); err != nil {
				// Fall back to the persisted display identity so the user
				// still sees who they last were.
				if id, loadErr := session.LoadIdentity(session.DefaultIdentityPath()); loadErr == nil && id != nil {
					fmt.Printf("Not logged in (last session: %s <%s>)\n", id.FullName, id.Email)
					return err
				}
				return err
			}

			profile, err := a().Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Name:       %s\n", profile.FullName)
			fmt.Printf("Email:      %s\n", profile.Email)
			fmt.Printf("Role:       %s\n", profile.Role)
			fmt.Printf("Department: %s\n", profile.Department)
			fmt.Printf("Dashboard:  %s\n", session.DefaultRoute(profile.Role))

			if token, ok := a().Store.Token(); ok {
				if exp, ok := auth.TokenExpiry(token); ok {
					fmt.Printf("Token:      expires in %s\n", time.Until(exp).Round(time.Second))
				}
			}
			return nil
		},
	}
}
