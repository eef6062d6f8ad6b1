package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Profile is the session identity: who the caller is and what role they hold
type Profile struct {
	ID         int    `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	IsVerified int    `json:"is_verified"`
}

// StaffMember is one entry in the staff directory
type StaffMember struct {
	ID         int    `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

// GetProfile fetches the caller's identity. Unlike the domain endpoints the
// profile response is not status-tagged, so it is decoded directly.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	resp, err := c.gate.Do(ctx, http.MethodGet, c.baseURL+"/auth/profile", nil, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("GET /auth/profile: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env Envelope[struct{}]
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil {
			return Profile{}, &APIError{StatusCode: resp.StatusCode, Message: env.ErrorMessage()}
		}
		return Profile{}, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var body struct {
		Data    Profile `json:"data"`
		Message string  `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Profile{}, fmt.Errorf("decoding profile response: %w", err)
	}
	return body.Data, nil
}

// UpdateProfile changes the caller's department
func (c *Client) UpdateProfile(ctx context.Context, department string) error {
	payload := struct {
		Department string `json:"department"`
	}{Department: department}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.gate.Do(ctx, http.MethodPost, c.baseURL+"/auth/profile", body, nil)
	if err != nil {
		return fmt.Errorf("POST /auth/profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return nil
}

// GetStaffList fetches the staff directory
func (c *Client) GetStaffList(ctx context.Context) ([]StaffMember, error) {
	return call[[]StaffMember](ctx, c, http.MethodGet, "/auth/users", nil)
}
