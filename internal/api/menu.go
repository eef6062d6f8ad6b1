package api

import (
	"context"
	"fmt"
	"net/http"
)

// MenuItem is one meal offered on the daily menu
type MenuItem struct {
	ID   int    `json:"id"`
	Meal string `json:"meal"`
	Day  string `json:"day,omitempty"`
}

// GetMenu lists the current menu
func (c *Client) GetMenu(ctx context.Context) ([]MenuItem, error) {
	return call[[]MenuItem](ctx, c, http.MethodGet, "/api/menu", nil)
}

// AddMenuItem adds a meal to the menu and returns the created item
func (c *Client) AddMenuItem(ctx context.Context, meal string) (MenuItem, error) {
	payload := struct {
		Meal string `json:"meal"`
	}{Meal: meal}
	return call[MenuItem](ctx, c, http.MethodPost, "/api/menu", payload)
}

// RemoveMenuItem deletes a menu item by id
func (c *Client) RemoveMenuItem(ctx context.Context, id int) error {
	_, err := call[struct{}](ctx, c, http.MethodDelete, fmt.Sprintf("/api/menu/%d", id), nil)
	return err
}
