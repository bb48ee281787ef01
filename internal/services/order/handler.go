package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"temple-eats/internal/cart"
	"temple-eats/internal/logger"
	"temple-eats/internal/loyalty"
	"temple-eats/internal/models"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/menu", h.withLogging(h.GetMenu))
	mux.HandleFunc("/cart", h.withLogging(h.GetCart))
	mux.HandleFunc("/cart/session", h.withLogging(h.NewSession))
	mux.HandleFunc("/cart/items", h.withLogging(h.CartItems))
	mux.HandleFunc("/cart/clear", h.withLogging(h.ClearCart))
	mux.HandleFunc("/checkout", h.withLogging(h.Checkout))
	mux.HandleFunc("/orders/", h.withLogging(h.CancelOrder))
	mux.HandleFunc("/loyalty", h.withLogging(h.GetLoyalty))
	mux.HandleFunc("/loyalty/rewards", h.withLogging(h.GetRewards))
	mux.HandleFunc("/loyalty/redeem", h.withLogging(h.RedeemReward))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))

	return mux
}

type addItemRequest struct {
	ItemID   string            `json:"item_id"`
	Quantity int               `json:"quantity"`
	Options  map[string]string `json:"options,omitempty"`
}

type updateItemRequest struct {
	ItemID   string            `json:"item_id"`
	Quantity int               `json:"quantity"`
	Options  map[string]string `json:"options,omitempty"`
}

type removeItemRequest struct {
	ItemID  string            `json:"item_id"`
	Options map[string]string `json:"options,omitempty"`
}

type redeemRequest struct {
	RewardID string `json:"reward_id"`
}

// GetMenu handles GET /menu requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	menu := h.service.Menu()
	response := map[string]interface{}{
		"categories": menu.Categories(),
		"items":      menu.Items(r.URL.Query().Get("category")),
	}
	h.writeJSON(w, http.StatusOK, response, requestID)
}

// GetCart handles GET /cart requests
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Session-ID header is required", requestID)
		return
	}

	ledger := h.service.Carts().GetOrCreate(sessionID)
	delivery := r.URL.Query().Get("fulfillment") != string(models.Pickup)

	response := map[string]interface{}{
		"items":       ledger.Lines(),
		"total_items": ledger.TotalItems(),
		"totals":      ledger.Totals(h.service.Pricing(), delivery),
	}
	h.writeJSON(w, http.StatusOK, response, requestID)
}

// NewSession handles POST /cart/session requests
func (h *Handler) NewSession(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID := h.service.Carts().NewSession()
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{"session_id": sessionID}, requestID)
}

// CartItems handles POST, PUT, and DELETE /cart/items requests
func (h *Handler) CartItems(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Session-ID header is required", requestID)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.addCartItem(w, r, sessionID, requestID)
	case http.MethodPut:
		h.updateCartItem(w, r, sessionID, requestID)
	case http.MethodDelete:
		h.removeCartItem(w, r, sessionID, requestID)
	default:
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
	}
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request, sessionID, requestID string) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	line, err := h.service.AddToCart(sessionID, req.ItemID, req.Options, req.Quantity)
	if err != nil {
		h.logger.Error("cart_add_failed", "Failed to add item to cart", requestID, err, map[string]interface{}{
			"item_id": req.ItemID,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.logger.Debug("cart_item_added", fmt.Sprintf("Added %s to cart", line.Name), requestID, map[string]interface{}{
		"item_id":  line.ItemID,
		"quantity": line.Quantity,
	})
	h.writeJSON(w, http.StatusOK, line, requestID)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request, sessionID, requestID string) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ledger := h.service.Carts().GetOrCreate(sessionID)
	if err := ledger.UpdateQuantity(req.ItemID, req.Quantity, matchOptions(req.Options)); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"items": ledger.Lines()}, requestID)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request, sessionID, requestID string) {
	var req removeItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ledger := h.service.Carts().GetOrCreate(sessionID)
	if err := ledger.RemoveItem(req.ItemID, matchOptions(req.Options)); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"items": ledger.Lines()}, requestID)
}

// ClearCart handles POST /cart/clear requests
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Session-ID header is required", requestID)
		return
	}

	ledger := h.service.Carts().GetOrCreate(sessionID)
	ledger.Clear()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"items": []cart.Line{}}, requestID)
}

// Checkout handles POST /checkout requests
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Session-ID header is required", requestID)
		return
	}

	var req models.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse checkout request", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	// Points must land on a real account, never a shared anonymous one
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		customerID = req.CustomerEmail
	}
	if customerID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Customer-ID header or customer_email is required", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.Checkout(ctx, sessionID, customerID, &req, requestID)
	if err != nil {
		var validationErr models.ValidationError
		switch {
		case errors.As(err, &validationErr), errors.Is(err, ErrCartEmpty):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		default:
			h.logger.Error("checkout_failed", "Failed to place order", requestID, err, map[string]interface{}{
				"customer_name": req.CustomerName,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, response, requestID)
}

// CancelOrder handles POST /orders/{order_number}/cancel requests
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orderNumber := extractPathSegment(r.URL.Path, "/orders/", "/cancel")
	if orderNumber == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order number", requestID)
		return
	}

	err := h.service.CancelOrder(r.Context(), orderNumber, requestID)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"order_number": orderNumber,
			"status":       string(models.StatusCancelled),
		}, requestID)
	case errors.Is(err, ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
	case errors.Is(err, ErrNotCancellable):
		h.writeErrorResponse(w, http.StatusConflict, err.Error(), requestID)
	default:
		h.logger.Error("cancel_failed", "Failed to cancel order", requestID, err, map[string]interface{}{
			"order_number": orderNumber,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// GetLoyalty handles GET /loyalty requests
func (h *Handler) GetLoyalty(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Customer-ID header is required", requestID)
		return
	}

	account := h.service.LoyaltyAccount(customerID)

	if orderNumber := r.URL.Query().Get("order"); orderNumber != "" {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{
			"order_number": orderNumber,
			"transactions": account.TransactionsByOrder(orderNumber),
		}, requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"points":       account.Balance(),
		"transactions": account.Transactions(),
	}, requestID)
}

// GetRewards handles GET /loyalty/rewards requests
func (h *Handler) GetRewards(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"rewards": loyalty.Rewards}, requestID)
}

// RedeemReward handles POST /loyalty/redeem requests
func (h *Handler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Customer-ID header is required", requestID)
		return
	}

	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	reward, ok, err := h.service.RedeemReward(r.Context(), customerID, req.RewardID, requestID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}
	if !ok {
		h.writeErrorResponse(w, http.StatusConflict, "Not enough points to redeem this reward", requestID)
		return
	}

	account := h.service.LoyaltyAccount(customerID)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"reward": reward,
		"points": account.Balance(),
	}, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	h.writeJSON(w, status, response, "")
}

// matchOptions converts the wire option choices into the matcher form the
// cart ledger compares on. Nil stays nil so id-only matching still applies.
func matchOptions(choices map[string]string) map[string]cart.Option {
	if choices == nil {
		return nil
	}
	options := make(map[string]cart.Option, len(choices))
	for group, id := range choices {
		options[group] = cart.Option{ID: id}
	}
	return options
}

func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// extractPathSegment pulls the value between prefix and suffix out of a path
func extractPathSegment(path, prefix, suffix string) string {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	segment := strings.TrimPrefix(path, prefix)
	segment = strings.TrimSuffix(segment, suffix)
	if segment == "" || strings.Contains(segment, "/") {
		return ""
	}
	return segment
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
