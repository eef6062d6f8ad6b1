package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasfood/vasfood-cli/internal/authstore"
	"github.com/vasfood/vasfood-cli/internal/gate"
	"github.com/vasfood/vasfood-cli/internal/logger"
)

type noRefresh struct{}

func (noRefresh) Refresh(ctx context.Context) (string, error) {
	return "", errors.New("refresh not available in this test")
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := authstore.New()
	store.SetToken("T1")
	g := gate.New(srv.Client(), store, noRefresh{}, logger.Nop())
	return NewClient(srv.URL, g, logger.Nop())
}

func TestGetMenu(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/menu", req.URL.Path)
		assert.Equal(t, "Bearer T1", req.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","message":"ok","data":[{"id":1,"meal":"Jollof rice"},{"id":2,"meal":"Beans"}]}`))
	}))

	items, err := c.GetMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Jollof rice", items[0].Meal)
}

func TestBodyTaggedErrorWinsOver200(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status":"error","message":"You already ordered today"}`))
	}))

	_, err := c.PlaceOrder(context.Background(), 7, PlaceOrderRequest{Meal: "Beans"})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "You already ordered today", apiErr.Message)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestErrorsFieldPreferredOverMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":"error","message":"Validation failed","errors":"meal is required"}`))
	}))

	_, err := c.GetTodayOrder(context.Background(), 7)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "meal is required", apiErr.Message)
}

func TestNonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))

	_, err := c.GetTodaysOrders(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestPlaceOrderSendsBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/order/place-order/7", req.URL.Path)
		assert.Equal(t, http.MethodPost, req.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "Jollof rice", body["meal"])
		assert.Equal(t, "Beans", body["fallback_meal"])

		w.Write([]byte(`{"status":"success","message":"ok","data":{"order_id":99,"meal":"Jollof rice","status":"ordered","created_at":"2026-09-01"}}`))
	}))

	placed, err := c.PlaceOrder(context.Background(), 7, PlaceOrderRequest{Meal: "Jollof rice", FallbackMeal: "Beans"})
	require.NoError(t, err)
	assert.Equal(t, 99, placed.OrderID)
}

func TestGetProfile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/auth/profile", req.URL.Path)
		w.Write([]byte(`{"data":{"id":7,"full_name":"Ada Lovelace","email":"ada@example.com","department":"Engineering","role":"hr","is_verified":1},"message":"ok"}`))
	}))

	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	assert.Equal(t, "hr", profile.Role)
}

func TestAdminOrderHistoryQueryParams(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/admin/orders/history", req.URL.Path)
		q := req.URL.Query()
		assert.Equal(t, "2026-08-01", q.Get("from"))
		assert.Equal(t, "2026-08-31", q.Get("to"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "50", q.Get("limit"))
		w.Write([]byte(`{"status":"success","message":"ok","data":[]}`))
	}))

	orders, err := c.GetAdminOrderHistory(context.Background(), "2026-08-01", "2026-08-31", 2, 50)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUserIDByName(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/auth/user-id-by-name", req.URL.Path)
		assert.Equal(t, "Grace Hopper", req.URL.Query().Get("name"))
		w.Write([]byte(`{"status":"success","message":"ok","data":{"id":42}}`))
	}))

	id, err := c.UserIDByName(context.Background(), "Grace Hopper")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestEnvelopeErrorMessageFallback(t *testing.T) {
	e := &Envelope[struct{}]{Status: "error"}
	assert.Equal(t, "an error occurred", e.ErrorMessage())

	e.Message = "boom"
	assert.Equal(t, "boom", e.ErrorMessage())

	e.Errors = "field missing"
	assert.Equal(t, "field missing", e.ErrorMessage())
}
