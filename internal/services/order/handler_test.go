package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"temple-eats/internal/config"
	"temple-eats/internal/logger"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Pricing.TaxRate = 0.0825
	cfg.Pricing.DeliveryFee = 3.99
	cfg.Loyalty.StartingBalance = 740

	log := logger.New("order-service-test")
	service := NewService(nil, nil, log, cfg)
	return NewHandler(service, log)
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, headers map[string]string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetMenu(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()

	rec := doJSON(t, mux, http.MethodGet, "/menu", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Categories []struct {
			ID string `json:"id"`
		} `json:"categories"`
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode menu response: %v", err)
	}
	if len(response.Categories) == 0 || len(response.Items) == 0 {
		t.Errorf("expected non-empty menu, got %d categories and %d items", len(response.Categories), len(response.Items))
	}
}

func TestNewSession(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()

	rec := doJSON(t, mux, http.MethodPost, "/cart/session", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode session response: %v", err)
	}
	if response.SessionID == "" {
		t.Error("expected a non-empty session id")
	}
}

func TestCartItemsRequiresSession(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()

	rec := doJSON(t, mux, http.MethodPost, "/cart/items", nil, map[string]interface{}{
		"item_id":  "1",
		"quantity": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without session header, got %d", rec.Code)
	}
}

func TestCartLifecycle(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()
	headers := map[string]string{"X-Session-ID": "session-1"}

	addBody := map[string]interface{}{
		"item_id":  "1",
		"quantity": 2,
		"options": map[string]string{
			"size":     "12pc",
			"sauce":    "hot",
			"dressing": "ranch",
		},
	}

	rec := doJSON(t, mux, http.MethodPost, "/cart/items", headers, addBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Same configuration merges into the existing line
	rec = doJSON(t, mux, http.MethodPost, "/cart/items", headers, addBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodGet, "/cart", headers, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: expected 200, got %d", rec.Code)
	}
	var cartResponse struct {
		Items      []json.RawMessage `json:"items"`
		TotalItems int               `json:"total_items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cartResponse); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	if len(cartResponse.Items) != 1 {
		t.Errorf("expected 1 merged line, got %d", len(cartResponse.Items))
	}
	if cartResponse.TotalItems != 4 {
		t.Errorf("expected 4 total items, got %d", cartResponse.TotalItems)
	}

	rec = doJSON(t, mux, http.MethodPut, "/cart/items", headers, map[string]interface{}{
		"item_id":  "1",
		"quantity": 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update quantity: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodDelete, "/cart/items", headers, map[string]interface{}{
		"item_id": "1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("remove item: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodGet, "/cart", headers, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &cartResponse); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	if cartResponse.TotalItems != 0 {
		t.Errorf("expected empty cart after removal, got %d items", cartResponse.TotalItems)
	}
}

func TestAddUnknownItem(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()
	headers := map[string]string{"X-Session-ID": "session-2"}

	rec := doJSON(t, mux, http.MethodPost, "/cart/items", headers, map[string]interface{}{
		"item_id":  "99",
		"quantity": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown item, got %d", rec.Code)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()
	headers := map[string]string{
		"X-Session-ID":  "session-3",
		"X-Customer-ID": "customer-3",
	}

	rec := doJSON(t, mux, http.MethodPost, "/checkout", headers, map[string]interface{}{
		"customer_name":    "Ada Chen",
		"fulfillment_type": "pickup",
		"payment_method":   "card",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on empty cart checkout, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutRequiresCustomerIdentity(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()
	headers := map[string]string{"X-Session-ID": "session-6"}

	rec := doJSON(t, mux, http.MethodPost, "/cart/items", headers, map[string]interface{}{
		"item_id":  "1",
		"quantity": 1,
		"options": map[string]string{
			"size":     "6pc",
			"sauce":    "mild",
			"dressing": "ranch",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// No X-Customer-ID header and no customer_email in the request
	rec = doJSON(t, mux, http.MethodPost, "/checkout", headers, map[string]interface{}{
		"customer_name":    "Ada Chen",
		"fulfillment_type": "pickup",
		"payment_method":   "card",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without customer identity, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLoyaltyEndpoints(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()
	headers := map[string]string{"X-Customer-ID": "customer-4"}

	rec := doJSON(t, mux, http.MethodGet, "/loyalty", headers, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get loyalty: expected 200, got %d", rec.Code)
	}
	var balance struct {
		Points int `json:"points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("failed to decode loyalty response: %v", err)
	}
	if balance.Points != 740 {
		t.Errorf("expected starting balance 740, got %d", balance.Points)
	}

	rec = doJSON(t, mux, http.MethodGet, "/loyalty/rewards", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get rewards: expected 200, got %d", rec.Code)
	}
}

func TestRedeemInsufficientPoints(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()
	headers := map[string]string{"X-Customer-ID": "customer-5"}

	// Free 6pc Wings costs 1000, starting balance is 740
	rec := doJSON(t, mux, http.MethodPost, "/loyalty/redeem", headers, map[string]interface{}{
		"reward_id": "1",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on insufficient points, got %d: %s", rec.Code, rec.Body.String())
	}

	// Balance is untouched after the failed redemption
	rec = doJSON(t, mux, http.MethodGet, "/loyalty", headers, nil)
	var balance struct {
		Points int `json:"points"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("failed to decode loyalty response: %v", err)
	}
	if balance.Points != 740 {
		t.Errorf("expected balance 740 after failed redemption, got %d", balance.Points)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestHandler(t).SetupRoutes()

	rec := doJSON(t, mux, http.MethodPost, "/menu", nil, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST /menu, got %d", rec.Code)
	}
}
