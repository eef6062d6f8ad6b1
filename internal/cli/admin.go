package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vasfood/vasfood-cli/internal/api"
	"github.com/vasfood/vasfood-cli/internal/app"
	"github.com/vasfood/vasfood-cli/internal/session"
)

func newAdminCmd(a func() *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "HR views and actions over staff orders",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a().Guard.RequireRole(cmd.Context(), session.RoleHR)
		},
	}

	today := &cobra.Command{
		Use:   "today",
		Short: "List every order placed today",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a().API.GetTodaysOrders(cmd.Context())
			if err != nil {
				return err
			}
			printAdminOrders(orders)
			return nil
		},
	}

	var from, to string
	var page, limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List orders in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := a().API.GetAdminOrderHistory(cmd.Context(), from, to, page, limit)
			if err != nil {
				return err
			}
			printAdminOrders(orders)
			return nil
		},
	}
	history.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	history.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	history.Flags().IntVar(&page, "page", 1, "page number")
	history.Flags().IntVar(&limit, "limit", 20, "rows per page")
	history.MarkFlagRequired("from")
	history.MarkFlagRequired("to")

	var collectUser int
	collect := &cobra.Command{
		Use:   "collect",
		Short: "Mark a user's order as collected",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().API.AdminCollectOrder(cmd.Context(), collectUser); err != nil {
				return err
			}
			fmt.Printf("Marked order for user %d as collected\n", collectUser)
			return nil
		},
	}
	collect.Flags().IntVar(&collectUser, "user", 0, "user id")
	collect.MarkFlagRequired("user")

	var uncollectOrder int
	uncollect := &cobra.Command{
		Use:   "uncollect",
		Short: "Revert a collection mark",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().API.AdminUncollectOrder(cmd.Context(), uncollectOrder); err != nil {
				return err
			}
			fmt.Printf("Unmarked collection for order %d\n", uncollectOrder)
			return nil
		},
	}
	uncollect.Flags().IntVar(&uncollectOrder, "order", 0, "order id")
	uncollect.MarkFlagRequired("order")

	var placeName, placeMeal, placeFallback string
	place := &cobra.Command{
		Use:   "place",
		Short: "Place an order on behalf of a staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a().API.UserIDByName(cmd.Context(), placeName)
			if err != nil {
				return err
			}
			req := api.PlaceOrderRequest{Meal: placeMeal, FallbackMeal: placeFallback}
			if err := a().API.AdminPlaceOrder(cmd.Context(), userID, req); err != nil {
				return err
			}
			fmt.Printf("Placed order for %s\n", placeName)
			return nil
		},
	}
	place.Flags().StringVar(&placeName, "name", "", "staff member's full name")
	place.Flags().StringVar(&placeMeal, "meal", "", "meal choice")
	place.Flags().StringVar(&placeFallback, "fallback", "", "fallback meal")
	place.MarkFlagRequired("name")
	place.MarkFlagRequired("meal")

	var editOrder int
	var editMeal, editFallback string
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Edit an existing order",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.PlaceOrderRequest{Meal: editMeal, FallbackMeal: editFallback}
			if err := a().API.AdminEditOrder(cmd.Context(), editOrder, req); err != nil {
				return err
			}
			fmt.Printf("Updated order %d\n", editOrder)
			return nil
		},
	}
	edit.Flags().IntVar(&editOrder, "order", 0, "order id")
	edit.Flags().StringVar(&editMeal, "meal", "", "meal choice")
	edit.Flags().StringVar(&editFallback, "fallback", "", "fallback meal")
	edit.MarkFlagRequired("order")
	edit.MarkFlagRequired("meal")

	cmd.AddCommand(today, history, collect, uncollect, place, edit)
	return cmd
}

func printAdminOrders(orders []api.AdminOrder) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tNAME\tDEPARTMENT\tMEAL\tFALLBACK\tSTATUS")
	for _, o := range orders {
		status := "ordered"
		if o.Collected == 1 {
			status = "collected"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.FullName, o.Department, o.Meal, o.FallbackMeal, status)
	}
	w.Flush()
}
