package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AdminOrder is one row in the admin views of orders
type AdminOrder struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	FullName     string `json:"full_name"`
	Meal         string `json:"meal"`
	FallbackMeal string `json:"fallback_meal"`
	Collected    int    `json:"collected"`
	OrderedAt    string `json:"ordered_at"`
	Department   string `json:"department"`
}

// GetTodaysOrders fetches every order placed today across all staff
func (c *Client) GetTodaysOrders(ctx context.Context) ([]AdminOrder, error) {
	return call[[]AdminOrder](ctx, c, http.MethodGet, "/api/admin/todays-orders", nil)
}

// GetAdminOrderHistory fetches orders in a date range, paginated.
// Dates are YYYY-MM-DD; page starts at 1.
func (c *Client) GetAdminOrderHistory(ctx context.Context, from, to string, page, limit int) ([]AdminOrder, error) {
	q := url.Values{
		"from":  {from},
		"to":    {to},
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	return call[[]AdminOrder](ctx, c, http.MethodGet, "/api/admin/orders/history?"+q.Encode(), nil)
}

// AdminPlaceOrder places an order on behalf of a user
func (c *Client) AdminPlaceOrder(ctx context.Context, userID int, req PlaceOrderRequest) error {
	_, err := call[struct{}](ctx, c, http.MethodPost, fmt.Sprintf("/api/admin/place-order/%d", userID), req)
	return err
}

// AdminEditOrder updates an existing order by order id
func (c *Client) AdminEditOrder(ctx context.Context, orderID int, req PlaceOrderRequest) error {
	_, err := call[struct{}](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/edit-order/%d", orderID), req)
	return err
}

// AdminCollectOrder marks a user's order collected
func (c *Client) AdminCollectOrder(ctx context.Context, userID int) error {
	_, err := call[struct{}](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/collect", userID), nil)
	return err
}

// AdminUncollectOrder reverts a collection mark by order id
func (c *Client) AdminUncollectOrder(ctx context.Context, orderID int) error {
	_, err := call[struct{}](ctx, c, http.MethodPut, fmt.Sprintf("/api/admin/unmark-collection/%d", orderID), nil)
	return err
}

// UserIDByName resolves a staff member's id from their full name
func (c *Client) UserIDByName(ctx context.Context, fullName string) (int, error) {
	type idData struct {
		ID int `json:"id"`
	}
	data, err := call[idData](ctx, c, http.MethodGet, "/auth/user-id-by-name?name="+url.QueryEscape(fullName), nil)
	if err != nil {
		return 0, err
	}
	return data.ID, nil
}
