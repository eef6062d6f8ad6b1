package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vasfood/vasfood-cli/internal/api"
	"github.com/vasfood/vasfood-cli/internal/app"
)

func newOrderCmd(a func() *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and track your lunch order",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a().Guard.RequireAuth(cmd.Context())
		},
	}

	var meal, fallback string
	place := &cobra.Command{
		Use:   "place",
		Short: "Place today's order",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a().Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			placed, err := a().API.PlaceOrder(cmd.Context(), profile.ID, api.PlaceOrderRequest{Meal: meal, FallbackMeal: fallback})
			if err != nil {
				return err
			}
			fmt.Printf("Order #%d placed: %s\n", placed.OrderID, placed.Meal)
			return nil
		},
	}
	place.Flags().StringVar(&meal, "meal", "", "meal choice")
	place.Flags().StringVar(&fallback, "fallback", "", "fallback meal if the first runs out")
	place.MarkFlagRequired("meal")

	var editMeal, editFallback string
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change today's order",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a().Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a().API.EditOrder(cmd.Context(), profile.ID, api.PlaceOrderRequest{Meal: editMeal, FallbackMeal: editFallback}); err != nil {
				return err
			}
			fmt.Println("Order updated.")
			return nil
		},
	}
	edit.Flags().StringVar(&editMeal, "meal", "", "meal choice")
	edit.Flags().StringVar(&editFallback, "fallback", "", "fallback meal")
	edit.MarkFlagRequired("meal")

	collect := &cobra.Command{
		Use:   "collect",
		Short: "Mark today's order as collected",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a().Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			if err := a().API.CollectOrder(cmd.Context(), profile.ID); err != nil {
				return err
			}
			fmt.Println("Order collected. Enjoy!")
			return nil
		},
	}

	today := &cobra.Command{
		Use:   "today",
		Short: "Show today's order",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a().Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			order, err := a().API.GetTodayOrder(cmd.Context(), profile.ID)
			if err != nil {
				return err
			}
			status := "ordered"
			if order.Collected == 1 {
				status = "collected"
			}
			fmt.Printf("%s (%s)\n", order.Meal, status)
			if order.FallbackMeal != "" {
				fmt.Printf("Fallback: %s\n", order.FallbackMeal)
			}
			return nil
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List your past orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a().Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			items, err := a().API.GetOrderHistory(cmd.Context(), profile.ID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tMEAL\tFALLBACK\tCOLLECTED")
			for _, it := range items {
				collected := "no"
				if it.Collected == 1 {
					collected = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.OrderedAt, it.Meal, it.FallbackMeal, collected)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(place, edit, collect, today, history)
	return cmd
}
