package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		gateway  string
		status   string
		note     string
	}{
		{"success", "paid", ""},
		{"failed", "failed", ""},
		{"abandoned", "failed", "Payment was abandoned"},
		{"processing", "pending", "Payment is still processing"},
		{"ongoing", "pending", "Payment is still processing"},
		{"reversed", "failed", "Payment failed due to unknown reason"},
	}
	for _, tc := range cases {
		status, note := MapStatus(tc.gateway)
		assert.Equal(t, tc.status, status, "gateway status %q", tc.gateway)
		assert.Equal(t, tc.note, note, "gateway status %q", tc.gateway)
	}
}

func TestValidSignature(t *testing.T) {
	secret := "sk_test_abc123"
	body := []byte(`{"event":"charge.success","data":{"reference":"REF1"}}`)

	assert.True(t, ValidSignature(secret, body, Signature(secret, body)))
	assert.False(t, ValidSignature(secret, body, Signature("other-secret", body)))
	assert.False(t, ValidSignature(secret, body, "deadbeef"))
	assert.False(t, ValidSignature(secret, []byte(`{"tampered":true}`), Signature(secret, body)))
}

func TestInitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_abc123", r.Header.Get("Authorization"))

		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "150000", req.Amount)
		assert.Equal(t, "NGN", req.Currency)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]string{
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code":       "abc",
				"reference":         req.Reference,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test_abc123")
	data, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Amount:    "150000",
		Email:     "payer@example.com",
		Reference: "REF1",
		Currency:  "NGN",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", data.AuthorizationURL)
	assert.Equal(t, "REF1", data.Reference)
}

func TestVerifyTransactionGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/REF404", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test_abc123")
	_, err := c.VerifyTransaction(context.Background(), "REF404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction reference not found")
}
