package tracking

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListOrdersRequiresCustomer(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	h.ListOrders(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without customer header, got %d", rec.Code)
	}
}

func TestListOrdersMethodNotAllowed(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("X-Customer-ID", "john.doe@email.com")
	rec := httptest.NewRecorder()
	h.ListOrders(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST /orders, got %d", rec.Code)
	}
}

func TestExtractOrderNumber(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name     string
		path     string
		suffix   string
		expected string
	}{
		{"valid status path", "/orders/TMP_20260314_001/status", "/status", "TMP_20260314_001"},
		{"valid history path", "/orders/TMP_20260314_002/history", "/history", "TMP_20260314_002"},
		{"missing order number", "/orders//status", "/status", ""},
		{"extra path segment", "/orders/a/b/status", "/status", ""},
		{"wrong suffix", "/orders/TMP_20260314_001/track", "/status", ""},
		{"wrong prefix", "/order/TMP_20260314_001/status", "/status", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.extractOrderNumber(tt.path, "/orders/", tt.suffix)
			if got != tt.expected {
				t.Errorf("extractOrderNumber(%q) = %q, expected %q", tt.path, got, tt.expected)
			}
		})
	}
}
