package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"edufin/pkg/mailer"
	"edufin/pkg/paystack"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (response, map[string]interface{}) {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding envelope: %v body=%s", err, rec.Body.String())
	}
	return response{Success: resp.Success, Message: resp.Message}, resp.Data
}

func setupTestServer(t *testing.T) (*app, *gin.Engine) {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)

	cfg := config{
		DBDSN:              os.Getenv("DB_DSN"),
		JWTSecret:          "integration-test-secret",
		JWTExpiresIn:       time.Hour,
		SuperAdminEmail:    "root@integration.test",
		SuperAdminPassword: "root-password-1",
		PaystackSecretKey:  "sk_test_integration",
		UploadBase:         t.TempDir(),
	}
	db, err := openDB(cfg)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	migrate(db)
	seedDB(db, cfg)

	a := &app{
		cfg:      cfg,
		db:       db,
		mailer:   mailer.New("", "Test", "test@integration.test"),
		paystack: paystack.New("http://127.0.0.1:0", cfg.PaystackSecretKey),
	}
	return a, a.routes()
}

func loginAs(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	rec := performRequest(r, http.MethodPost, "/auth/login", bytes.NewBuffer(body), "")
	env, data := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("login as %s failed: %s", email, env.Message)
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("login as %s returned no token", email)
	}
	return token
}

func TestFullAdminFlow(t *testing.T) {
	_, r := setupTestServer(t)

	token := loginAs(t, r, "root@integration.test", "root-password-1")

	// 1. Create a programme.
	progBody, _ := json.Marshal(map[string]string{"name": "Integration Engineering"})
	rec := performRequest(r, http.MethodPost, "/programmes", bytes.NewBuffer(progBody), token)
	env, progData := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("creating programme: %s", env.Message)
	}
	programmeID := uint(progData["id"].(float64))

	// 2. Create a bill type under it.
	btBody, _ := json.Marshal(map[string]interface{}{
		"name":        "Integration Tuition",
		"programmeId": programmeID,
	})
	rec = performRequest(r, http.MethodPost, "/bill-types", bytes.NewBuffer(btBody), token)
	env, btData := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("creating bill type: %s", env.Message)
	}
	billTypeID := uint(btData["id"].(float64))

	// 3. Create a student enrolled in the programme.
	studentEmail := fmt.Sprintf("student-%d@integration.test", time.Now().UnixNano())
	stBody, _ := json.Marshal(map[string]interface{}{
		"email":       studentEmail,
		"firstName":   "Inte",
		"lastName":    "Gration",
		"gender":      "female",
		"nationality": "Nigerian",
		"dateOfBirth": "2003-05-14T00:00:00Z",
		"phoneNumber": "+2348000000001",
		"address":     "1 Test Road",
		"city":        "Lagos",
		"state":       "Lagos",
		"zipCode":     "100001",
		"country":     "Nigeria",
		"programmeId": programmeID,
	})
	rec = performRequest(r, http.MethodPost, "/students", bytes.NewBuffer(stBody), token)
	env, _ = decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("creating student: %s", env.Message)
	}

	// 4. Issue the same bill twice; every call creates a new bill.
	billBody, _ := json.Marshal(map[string]interface{}{
		"name":       "Integration Bill",
		"amount":     150000, // 1,500.00 in minor units
		"dueDate":    time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		"billTypeId": billTypeID,
	})
	var billIDs []uint
	for i := 0; i < 2; i++ {
		rec = performRequest(r, http.MethodPost, "/bills", bytes.NewReader(billBody), token)
		env, billData := decodeEnvelope(t, rec)
		if !env.Success {
			t.Fatalf("creating bill (attempt %d): %s", i+1, env.Message)
		}
		billIDs = append(billIDs, uint(billData["id"].(float64)))
		if amount, _ := billData["amountDue"].(float64); amount != 1500.00 {
			t.Fatalf("bill amount = %v, want 1500.00", amount)
		}
		if payees, _ := billData["payeeCount"].(float64); payees < 1 {
			t.Fatalf("bill has no payees")
		}
	}
	if billIDs[0] == billIDs[1] {
		t.Fatalf("two bill creations returned the same bill %d", billIDs[0])
	}

	// 5. The student sees the bills on the portal.
	studentToken := loginAsNewStudent(t, r, studentEmail)
	rec = performRequest(r, http.MethodGet, "/student/bills", nil, studentToken)
	var listResp struct {
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil || !listResp.Success {
		t.Fatalf("student bills: %s", rec.Body.String())
	}
	if len(listResp.Data) < 2 {
		t.Fatalf("student sees %d bills, want at least 2", len(listResp.Data))
	}

	// 6. A student token cannot reach the admin /students routes.
	rec = performRequest(r, http.MethodGet, "/students", nil, studentToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student reading /students: status=%d, want 403", rec.Code)
	}
}

// loginAsNewStudent resets the generated password through the admin-visible
// path: accounts get a random default password by mail, so the test swaps it
// for a known one via the reset flow before logging in.
func loginAsNewStudent(t *testing.T, r http.Handler, email string) string {
	t.Helper()

	// Request a reset (console mailer logs the link; the token is minted the
	// same way here).
	body, _ := json.Marshal(map[string]string{"email": email})
	rec := performRequest(r, http.MethodPost, "/auth/password-reset/request", bytes.NewBuffer(body), "")
	env, _ := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("requesting reset for %s: %s", email, env.Message)
	}

	// The test cannot read the mailed link, so mint the equivalent token
	// directly against the same secret the server uses.
	a := &app{cfg: config{JWTSecret: "integration-test-secret", JWTExpiresIn: time.Hour}}
	token, err := a.resetTokenFor(email)
	if err != nil {
		t.Fatalf("minting reset token: %v", err)
	}
	body, _ = json.Marshal(map[string]string{"token": token, "password": "known-password-1"})
	rec = performRequest(r, http.MethodPost, "/auth/password-reset", bytes.NewBuffer(body), "")
	env, _ = decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("performing reset for %s: %s", email, env.Message)
	}

	return loginAs(t, r, email, "known-password-1")
}
