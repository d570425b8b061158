package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumina/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := AppConfig{
		JWTSecret:     "test_jwt_secret",
		CatalogSeed:   42,
		AuthDelay:     time.Millisecond,
		CheckoutDelay: 10 * time.Millisecond,
	}
	return NewApp(
		cfg,
		repositories.NewInMemoryUserRepository(),
		repositories.NewInMemorySnapshotRepository(),
		repositories.NewInMemoryOrderRepository(),
		nil, // order events disabled
	)
}

func jsonRequest(method, target, token string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestCartRequiresAuthentication(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestStorefrontFlow(t *testing.T) {
	app := newTestApp(t)

	// Register and log in.
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "nova@example.com",
		"password": "password123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nova@example.com",
		"password": "password123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := decode(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	// The generated catalog is browsable without a token.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price-asc", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 36, decode(t, resp)["count"])

	// Add a product (every generated product has stock >= 2).
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/cart/items", token, map[string]string{
		"product_id": "prod-1",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "added", body["outcome"])

	// Pushing the quantity far past the captured stock is rejected and the
	// cart is left unchanged.
	resp, err = app.Test(jsonRequest(http.MethodPatch, "/api/v1/cart/items/prod-1", token, map[string]int{
		"delta": 1000,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, "stock_exceeded", body["outcome"])
	assert.Equal(t, "Not enough stock available", body["message"])

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/cart", token, nil))
	require.NoError(t, err)
	body = decode(t, resp)
	assert.EqualValues(t, 1, body["item_count"])

	// Checkout: accepted, then completed after the simulated delay.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping": map[string]string{
			"name":    "Nova Reyes",
			"address": "123 Virtual Lane",
			"city":    "Cyber City",
			"country": "Netland",
			"phone":   "555-0100",
		},
		"payment_method": "card",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	orderID, _ := decode(t, resp)["order_id"].(string)
	require.NotEmpty(t, orderID)

	deadline := time.Now().Add(2 * time.Second)
	state := ""
	for time.Now().Before(deadline) {
		resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/checkout/status", token, nil))
		require.NoError(t, err)
		body = decode(t, resp)
		state, _ = body["state"].(string)
		if state == "completed" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, "completed", state)
	assert.Equal(t, orderID, body["order_id"])

	// Completion cleared the cart and recorded the order.
	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/cart", token, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 0, decode(t, resp)["item_count"])

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/orders", token, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0]["id"])
	assert.Equal(t, "completed", orders[0]["status"])

	// Empty cart cannot be checked out again.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping": map[string]string{
			"name":    "Nova Reyes",
			"address": "123 Virtual Lane",
			"city":    "Cyber City",
			"country": "Netland",
			"phone":   "555-0100",
		},
		"payment_method": "card",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Logout removes the persisted identity.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/auth/logout", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
