package api

import (
	"context"
	"fmt"
	"net/http"
)

// PlaceOrderRequest is the body for placing or editing an order
type PlaceOrderRequest struct {
	Meal         string `json:"meal"`
	FallbackMeal string `json:"fallback_meal,omitempty"`
}

// PlacedOrder is the confirmation returned when an order is created
type PlacedOrder struct {
	OrderID   int    `json:"order_id"`
	Meal      string `json:"meal"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// TodayOrder is the caller's current order for today. Collected is 1 once
// the order has been handed out, 0 while it is still pending.
type TodayOrder struct {
	Meal         string `json:"meal"`
	FallbackMeal string `json:"fallback_meal,omitempty"`
	OrderedAt    string `json:"ordered_at"`
	Collected    int    `json:"collected"`
}

// OrderHistoryItem is one row of a user's past orders
type OrderHistoryItem struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	Meal         string `json:"meal"`
	FallbackMeal string `json:"fallback_meal"`
	Collected    int    `json:"collected"`
	OrderedAt    string `json:"ordered_at"`
	UpdatedAt    string `json:"updated_at"`
}

// PlaceOrder creates today's order for the given user
func (c *Client) PlaceOrder(ctx context.Context, userID int, req PlaceOrderRequest) (PlacedOrder, error) {
	return call[PlacedOrder](ctx, c, http.MethodPost, fmt.Sprintf("/api/order/place-order/%d", userID), req)
}

// EditOrder replaces the meal choice on today's order
func (c *Client) EditOrder(ctx context.Context, userID int, req PlaceOrderRequest) error {
	_, err := call[struct{}](ctx, c, http.MethodPut, fmt.Sprintf("/api/order/edit-order/%d", userID), req)
	return err
}

// CollectOrder marks the user's order as collected
func (c *Client) CollectOrder(ctx context.Context, userID int) error {
	_, err := call[struct{}](ctx, c, http.MethodPut, fmt.Sprintf("/api/order/collect-order/%d", userID), nil)
	return err
}

// GetTodayOrder fetches the user's order for today
func (c *Client) GetTodayOrder(ctx context.Context, userID int) (TodayOrder, error) {
	return call[TodayOrder](ctx, c, http.MethodGet, fmt.Sprintf("/api/order/today-order/%d", userID), nil)
}

// GetOrderHistory fetches all past orders for the user
func (c *Client) GetOrderHistory(ctx context.Context, userID int) ([]OrderHistoryItem, error) {
	return call[[]OrderHistoryItem](ctx, c, http.MethodGet, fmt.Sprintf("/api/order/order-history/%d", userID), nil)
}
