package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(3100), payload["amount"])
		assert.Equal(t, "INR", payload["currency"])
		assert.Equal(t, "receipt_order_1", payload["receipt"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   3100,
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer server.Close()

	gw := &RazorpayGateway{
		BaseURL:   server.URL,
		KeyID:     "key_id",
		KeySecret: "key_secret",
		Client:    &http.Client{Timeout: time.Second},
	}

	order, err := gw.CreateOrder(context.Background(), 3100, "INR", "receipt_order_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(3100), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer server.Close()

	gw := &RazorpayGateway{
		BaseURL:   server.URL,
		KeyID:     "key_id",
		KeySecret: "key_secret",
		Client:    &http.Client{Timeout: time.Second},
	}

	_, err := gw.CreateOrder(context.Background(), 1, "INR", "receipt_order_2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount too small")
}

func TestVerifySignature(t *testing.T) {
	// HMAC-SHA256("order_abc|pay_123", "secret"), precomputed.
	const valid = "9ce39261e119b2f4659e30dd118de68ee51b654d2bb0762c7c01e2ba887feea3"

	assert.True(t, VerifySignature("order_abc", "pay_123", valid, "secret"))
	assert.False(t, VerifySignature("order_abc", "pay_123", valid, "other-secret"))
	assert.False(t, VerifySignature("order_abc", "pay_999", valid, "secret"))
	assert.False(t, VerifySignature("order_abc", "pay_123", "deadbeef", "secret"))
	assert.False(t, VerifySignature("order_abc", "pay_123", "", "secret"))
}
