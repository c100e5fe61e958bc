package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dinehub/internal/logger"
	"dinehub/internal/menu"
)

// Handler exposes the cart engine over HTTP. Sessions are identified
// by the X-Session-ID header; each session owns one cart.
type Handler struct {
	manager          *Manager
	catalog          menu.Catalog
	drafts           *DraftStore
	deliveryFeeCents int
	logger           *logger.Logger
}

// NewHandler creates a cart HTTP handler.
func NewHandler(manager *Manager, catalog menu.Catalog, drafts *DraftStore, deliveryFeeCents int, log *logger.Logger) *Handler {
	return &Handler{
		manager:          manager,
		catalog:          catalog,
		drafts:           drafts,
		deliveryFeeCents: deliveryFeeCents,
		logger:           log,
	}
}

// Register mounts the cart routes on the router.
func (h *Handler) Register(r *chi.Mux) {
	r.Post("/cart/items", h.addItem)
	r.Patch("/cart/items/{dishID}", h.updateQuantity)
	r.Delete("/cart/items/{dishID}", h.removeItem)
	r.Post("/cart/pending/confirm", h.confirmPendingAdd)
	r.Delete("/cart/pending", h.cancelPendingAdd)
	r.Get("/cart", h.getCart)
	r.Delete("/cart", h.clearCart)
	r.Get("/cart/total", h.getTotal)
	r.Put("/cart/draft", h.saveDraft)
	r.Get("/cart/draft", h.loadDraft)
	r.Delete("/cart/draft", h.deleteDraft)
}

type addItemRequest struct {
	DishID string `json:"dish_id"`
}

type addItemResponse struct {
	Result AddResult `json:"result"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req addItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	dish, err := h.catalog.Dish(req.DishID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, "Unknown dish", requestID)
		return
	}

	result, err := h.manager.Cart(sessionID).AddItem(dish)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.logger.Debug("cart_item_added", "Processed cart add", requestID, map[string]interface{}{
		"session_id": sessionID,
		"dish_id":    dish.ID,
		"result":     string(result),
	})

	// A cross-brand add is a flow branch, not a success: 409 tells the
	// client to drive its confirmation dialog.
	status := http.StatusOK
	if result == AddNeedsConfirmation {
		status = http.StatusConflict
	}
	h.writeJSON(w, status, addItemResponse{Result: result})
}

func (h *Handler) confirmPendingAdd(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	if err := h.manager.Cart(sessionID).ConfirmPendingAdd(); err != nil {
		if errors.Is(err, ErrNoPendingAdd) {
			h.writeErrorResponse(w, http.StatusConflict, "No pending add to confirm", requestID)
			return
		}
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, h.manager.Cart(sessionID).Snapshot())
}

func (h *Handler) cancelPendingAdd(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	h.manager.Cart(sessionID).CancelPendingAdd()
	w.WriteHeader(http.StatusNoContent)
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	var req updateQuantityRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	dishID := chi.URLParam(r, "dishID")
	if err := h.manager.Cart(sessionID).UpdateQuantity(dishID, req.Delta); err != nil {
		if errors.Is(err, ErrNotInCart) {
			h.writeErrorResponse(w, http.StatusNotFound, "Dish not in cart", requestID)
			return
		}
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, h.manager.Cart(sessionID).Snapshot())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	h.manager.Cart(sessionID).RemoveItem(chi.URLParam(r, "dishID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, h.manager.Cart(sessionID).Snapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	h.manager.Cart(sessionID).Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTotal(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}

	tipCents := 0
	if raw := r.URL.Query().Get("tip_cents"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "tip_cents must be an integer", requestID)
			return
		}
		tipCents = parsed
	}

	state := h.manager.Cart(sessionID).Snapshot()
	totals, err := ComputeTotal(state.Lines, h.deliveryFeeCents, tipCents)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, totals)
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}
	if h.drafts == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Draft store not configured", requestID)
		return
	}

	state := h.manager.Cart(sessionID).Snapshot()
	if err := h.drafts.Save(r.Context(), sessionID, state); err != nil {
		h.logger.Error("draft_save_failed", "Failed to save cart draft", requestID, err, map[string]interface{}{
			"session_id": sessionID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to save draft", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadDraft(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}
	if h.drafts == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Draft store not configured", requestID)
		return
	}

	state, err := h.drafts.Load(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "No saved draft", requestID)
			return
		}
		h.logger.Error("draft_load_failed", "Failed to load cart draft", requestID, err, map[string]interface{}{
			"session_id": sessionID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to load draft", requestID)
		return
	}

	h.manager.Cart(sessionID).Restore(state)
	h.writeJSON(w, http.StatusOK, h.manager.Cart(sessionID).Snapshot())
}

func (h *Handler) deleteDraft(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	sessionID, ok := h.sessionID(w, r, requestID)
	if !ok {
		return
	}
	if h.drafts == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Draft store not configured", requestID)
		return
	}

	if err := h.drafts.Delete(r.Context(), sessionID); err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete draft", requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionID extracts the session header, writing a 400 when missing.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "X-Session-ID header is required", requestID)
		return "", false
	}
	return sessionID, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	json.NewEncoder(w).Encode(errorResponse)
}
