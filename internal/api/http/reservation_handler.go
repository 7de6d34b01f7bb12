package http

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/logger"
	"outdoor-rental-backend/internal/service"
)

// ReservationHandler serves checkout, order lookup, and the back-office
// reservation management routes.
type ReservationHandler struct {
	reservations service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type checkoutRequest struct {
	domain.ContactInfo
	CartItems []domain.CartItem `json:"cartItems"`
}

type checkoutResponse struct {
	Reservation *domain.Reservation      `json:"reservation"`
	Items       []domain.ReservationItem `json:"items"`
	QRCode      string                   `json:"qrCode,omitempty"`
}

// HandleCheckout creates a reservation from the submitted cart.
func (h *ReservationHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.reservations.Checkout(r.Context(), req.ContactInfo, req.CartItems)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Reservation: result.Reservation,
		Items:       result.Items,
		QRCode:      paymentQRImage(result.PaymentQR),
	})
}

// HandleOrderLookup returns a reservation by its public order number.
func (h *ReservationHandler) HandleOrderLookup(w http.ResponseWriter, r *http.Request) {
	orderNumber := mux.Vars(r)["orderNumber"]
	reservation, err := h.reservations.GetByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

// HandleList returns all reservations with items and current statuses.
func (h *ReservationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.ListReservations(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

type updatePeriodRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Quantity int32  `json:"quantity"`
}

// HandleUpdate changes the dates and quantity of a reservation.
func (h *ReservationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updatePeriodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reservation, err := h.reservations.UpdatePeriod(r.Context(), id, req.DateFrom, req.DateTo, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

// HandleGetItems returns the line items of a reservation.
func (h *ReservationHandler) HandleGetItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reservation, err := h.reservations.GetReservation(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items := reservation.Items
	if items == nil {
		items = []domain.ReservationItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type replaceItemsRequest struct {
	Items []service.ItemEdit `json:"items"`
}

// HandleReplaceItems swaps the line items, repriced from the catalog.
func (h *ReservationHandler) HandleReplaceItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req replaceItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	items, err := h.reservations.ReplaceItems(r.Context(), id, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus sets the reservation status.
func (h *ReservationHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reservation, err := h.reservations.UpdateStatus(r.Context(), id, domain.ReservationStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

// HandleDelete removes a reservation and its items.
func (h *ReservationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.reservations.DeleteReservation(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleContract streams the rental agreement PDF.
func (h *ReservationHandler) HandleContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	pdf, err := h.reservations.BuildContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="contract-%d.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		logger.Error("failed to stream contract", "id", id, "error", err)
	}
}

// RegisterReservationRoutes registers checkout and order lookup publicly
// and the management routes behind the admin router.
func RegisterReservationRoutes(public, admin *mux.Router, reservations service.ReservationService) {
	handler := NewReservationHandler(reservations)
	public.HandleFunc("/api/reservations", handler.HandleCheckout).Methods("POST")
	public.HandleFunc("/api/reservations/order/{orderNumber}", handler.HandleOrderLookup).Methods("GET")

	admin.HandleFunc("/api/reservations", handler.HandleList).Methods("GET")
	admin.HandleFunc("/api/reservations/{id:[0-9]+}", handler.HandleUpdate).Methods("PUT")
	admin.HandleFunc("/api/reservations/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE")
	admin.HandleFunc("/api/reservations/{id:[0-9]+}/items", handler.HandleGetItems).Methods("GET")
	admin.HandleFunc("/api/reservations/{id:[0-9]+}/items", handler.HandleReplaceItems).Methods("PUT")
	admin.HandleFunc("/api/reservations/{id:[0-9]+}/status", handler.HandleUpdateStatus).Methods("PATCH")
	admin.HandleFunc("/api/reservations/{id:[0-9]+}/contract", handler.HandleContract).Methods("POST")
}

// paymentQRImage renders the payment descriptor as a PNG data URL for the
// confirmation page. An empty string is returned when rendering fails.
func paymentQRImage(payload string) string {
	if payload == "" {
		return ""
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		logger.Error("failed to render payment QR", "error", err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
