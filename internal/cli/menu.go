package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vasfood/vasfood-cli/internal/app"
	"github.com/vasfood/vasfood-cli/internal/session"
)

func newMenuCmd(a func() *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "View and manage the lunch menu",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the current menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().Guard.RequireAuth(cmd.Context()); err != nil {
				return err
			}
			items, err := a().API.GetMenu(cmd.Context())
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Printf("%4d  %s\n", it.ID, it.Meal)
			}
			return nil
		},
	}

	var meal string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a meal to the menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().Guard.RequireRole(cmd.Context(), session.RoleHR); err != nil {
				return err
			}
			item, err := a().API.AddMenuItem(cmd.Context(), meal)
			if err != nil {
				return err
			}
			fmt.Printf("Added #%d: %s\n", item.ID, item.Meal)
			return nil
		},
	}
	add.Flags().StringVar(&meal, "meal", "", "meal name")
	add.MarkFlagRequired("meal")

	var id int
	remove := &cobra.Command{
		Use:   "remove",
		Short: "Remove a meal from the menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().Guard.RequireRole(cmd.Context(), session.RoleHR); err != nil {
				return err
			}
			if err := a().API.RemoveMenuItem(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed menu item #%d\n", id)
			return nil
		},
	}
	remove.Flags().IntVar(&id, "id", 0, "menu item id")
	remove.MarkFlagRequired("id")

	cmd.AddCommand(list, add, remove)
	return cmd
}
