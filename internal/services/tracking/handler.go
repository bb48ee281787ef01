package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"temple-eats/internal/logger"
	"temple-eats/internal/models"
)

// Handler handles HTTP requests for the tracking service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new tracking handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/orders", h.withLogging(h.ListOrders))
	mux.HandleFunc("/orders/", h.withLogging(h.OrderRoutes))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))

	return mux
}

// OrderRoutes dispatches /orders/{order_number}/status and /orders/{order_number}/history
func (h *Handler) OrderRoutes(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/status"):
		h.GetOrderStatus(w, r)
	case strings.HasSuffix(r.URL.Path, "/history"):
		h.GetOrderHistory(w, r)
	default:
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", logger.GenerateRequestID())
	}
}

// ListOrders handles GET /orders requests, listing a customer's past orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	customerEmail := r.Header.Get("X-Customer-ID")
	if customerEmail == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Customer-ID header is required", requestID)
		return
	}

	orders, err := h.service.ListCustomerOrders(r.Context(), customerEmail, requestID)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list customer orders", requestID, err, map[string]interface{}{
			"customer_email": customerEmail,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders}, requestID)
}

// GetOrderStatus handles GET /orders/{order_number}/status requests
func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orderNumber := h.extractOrderNumber(r.URL.Path, "/orders/", "/status")
	if orderNumber == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order number", requestID)
		return
	}

	status, err := h.service.GetOrderStatus(r.Context(), orderNumber, requestID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
		} else {
			h.logger.Error("db_query_failed", "Failed to get order status", requestID, err, map[string]interface{}{
				"order_number": orderNumber,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, status, requestID)
}

// GetOrderHistory handles GET /orders/{order_number}/history requests
func (h *Handler) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orderNumber := h.extractOrderNumber(r.URL.Path, "/orders/", "/history")
	if orderNumber == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order number", requestID)
		return
	}

	history, err := h.service.GetOrderHistory(r.Context(), orderNumber, requestID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
		} else {
			h.logger.Error("db_query_failed", "Failed to get order history", requestID, err, map[string]interface{}{
				"order_number": orderNumber,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_number": orderNumber,
		"history":      history,
	}, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	healthy := h.service.HealthCheck(r.Context())

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "tracking-service",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	h.writeJSON(w, status, response, "")
}

// extractOrderNumber extracts the order number from a URL path
func (h *Handler) extractOrderNumber(path, prefix, suffix string) string {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	orderNumber := strings.TrimPrefix(path, prefix)
	orderNumber = strings.TrimSuffix(orderNumber, suffix)
	if orderNumber == "" || strings.Contains(orderNumber, "/") {
		return ""
	}
	return orderNumber
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}, requestID)
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
