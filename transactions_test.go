package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edufin/models"
	"edufin/pkg/paystack"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func webhookTestApp(secret, gatewayURL string) (*app, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	a := &app{
		cfg:      config{PaystackSecretKey: secret},
		paystack: paystack.New(gatewayURL, secret),
	}
	r := gin.New()
	r.POST("/transaction/webhook/verify", a.paystackWebhookHandler)
	return a, r
}

func TestNewPaystackPaymentStartsPendingWithNote(t *testing.T) {
	p := newPaystackPayment(7, 3, 1, "ref-abc", 150000)

	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, "Paid with Paystack", p.PaymentNote)
	assert.Equal(t, "ref-abc", p.PaymentReference)
	assert.Equal(t, "1500.00", p.Amount.String())
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	gatewayCalled := false
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayCalled = true
	}))
	defer gateway.Close()

	_, r := webhookTestApp("sk_test_secret", gateway.URL)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1","status":"success"}}`)
	req := httptest.NewRequest(http.MethodPost, "/transaction/webhook/verify", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", "deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid signature", resp.Message)
	assert.False(t, gatewayCalled, "a forged event must never reach the gateway")
}

func TestWebhookRejectsTamperedBody(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway should not be called")
	}))
	defer gateway.Close()

	_, r := webhookTestApp("sk_test_secret", gateway.URL)

	signed := []byte(`{"event":"charge.success","data":{"reference":"ref-1","status":"success"}}`)
	tampered := []byte(`{"event":"charge.success","data":{"reference":"ref-2","status":"success"}}`)
	req := httptest.NewRequest(http.MethodPost, "/transaction/webhook/verify", bytes.NewReader(tampered))
	req.Header.Set("x-paystack-signature", paystack.Signature("sk_test_secret", signed))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid signature", resp.Message)
}

// A correctly signed event is re-verified against the gateway; the event
// payload itself never settles a payment.
func TestWebhookVerifiesAgainstGateway(t *testing.T) {
	verifyCalls := 0
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		verifyCalls++
		assert.Equal(t, "/transaction/verify/ref-1", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
		// Gateway says the transaction does not check out.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Transaction not found",
		})
	}))
	defer gateway.Close()

	_, r := webhookTestApp("sk_test_secret", gateway.URL)

	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1","status":"success"}}`)
	req := httptest.NewRequest(http.MethodPost, "/transaction/webhook/verify", bytes.NewReader(body))
	req.Header.Set("x-paystack-signature", paystack.Signature("sk_test_secret", body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 1, verifyCalls)
	var resp response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Payment not verified", resp.Message)
}
