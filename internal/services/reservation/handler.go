package reservation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dinehub/internal/logger"
	"dinehub/internal/menu"
	"dinehub/internal/models"
)

// Handler exposes the reservation engine over HTTP.
type Handler struct {
	service *Service
	catalog menu.Catalog
	logger  *logger.Logger
}

// NewHandler creates a reservation HTTP handler.
func NewHandler(service *Service, catalog menu.Catalog, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		logger:  log,
	}
}

// Register mounts the reservation routes on the router.
func (h *Handler) Register(r *chi.Mux) {
	r.Get("/restaurants/{restaurantID}/availability", h.availability)
	r.Post("/reservations", h.createReservation)
	r.Get("/reservations", h.listReservations)
	r.Post("/reservations/{id}/cancel", h.cancelReservation)
	r.Post("/reservations/{id}/status", h.transitionStatus)
}

func (h *Handler) availability(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	restaurant, err := h.catalog.Restaurant(chi.URLParam(r, "restaurantID"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, "Unknown restaurant", requestID)
		return
	}

	guests, err := strconv.Atoi(r.URL.Query().Get("guests"))
	if err != nil || guests < 1 {
		h.writeErrorResponse(w, http.StatusBadRequest, "guests must be a positive integer", requestID)
		return
	}

	at, err := time.Parse(time.RFC3339, r.URL.Query().Get("time"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "time must be RFC3339", requestID)
		return
	}

	tables, err := h.service.AvailableTables(r.Context(), restaurant, guests, at)
	if err != nil {
		h.logger.Error("availability_query_failed", "Failed to query availability", requestID, err, map[string]interface{}{
			"restaurant_id": restaurant.ID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if tables == nil {
		tables = []models.Table{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"tables": tables})
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req models.CreateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	restaurant, err := h.catalog.Restaurant(req.RestaurantID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, "Unknown restaurant", requestID)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), restaurant, req, requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownTable):
			h.writeErrorResponse(w, http.StatusNotFound, "Unknown table", requestID)
		case errors.Is(err, ErrRestaurantClosed):
			h.writeErrorResponse(w, http.StatusConflict, "Restaurant is closed at the requested time", requestID)
		case errors.Is(err, ErrTableUnavailable):
			h.writeErrorResponse(w, http.StatusConflict, "Table is not available for the requested time", requestID)
		default:
			h.logger.Error("reservation_creation_failed", "Failed to create reservation", requestID, err, map[string]interface{}{
				"restaurant_id": req.RestaurantID,
				"table_number":  req.TableNumber,
			})
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	restaurantID := r.URL.Query().Get("restaurant_id")
	if restaurantID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "restaurant_id is required", requestID)
		return
	}

	reservations, err := h.service.Reservations(r.Context(), restaurantID)
	if err != nil {
		h.logger.Error("reservation_list_failed", "Failed to list reservations", requestID, err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	if reservations == nil {
		reservations = []models.Reservation{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": reservations})
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	reservation, err := h.service.CancelReservation(r.Context(), chi.URLParam(r, "id"), requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			h.writeErrorResponse(w, http.StatusNotFound, "Reservation not found", requestID)
		case errors.Is(err, ErrAlreadyTerminal):
			h.writeErrorResponse(w, http.StatusConflict, "Reservation is already in a terminal state", requestID)
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, reservation)
}

type transitionStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) transitionStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	var req transitionStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	reservation, err := h.service.TransitionStatus(r.Context(), chi.URLParam(r, "id"), models.ReservationStatus(req.Status), requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			h.writeErrorResponse(w, http.StatusNotFound, "Reservation not found", requestID)
		case errors.Is(err, ErrInvalidTransition):
			h.writeErrorResponse(w, http.StatusUnprocessableEntity, "Invalid status transition", requestID)
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, reservation)
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
