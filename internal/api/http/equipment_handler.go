package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/service"
)

// EquipmentHandler serves the public catalog and the admin catalog CRUD.
type EquipmentHandler struct {
	equipment    service.EquipmentService
	reservations service.ReservationService
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(equipment service.EquipmentService, reservations service.ReservationService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment, reservations: reservations}
}

// HandleList returns the catalog ordered by sortOrder.
func (h *EquipmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.Equipment{}
	}
	writeJSON(w, http.StatusOK, items)
}

type availabilityRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Quantity int32  `json:"quantity"`
}

type availabilityResponse struct {
	Available         bool  `json:"available"`
	AvailableQuantity int32 `json:"availableQuantity"`
}

// HandleAvailability reports free stock for a date range. Quantity
// defaults to 1 when omitted.
func (h *EquipmentHandler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	available, err := h.equipment.GetAvailableQuantity(r.Context(), id, req.DateFrom, req.DateTo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		Available:         available >= req.Quantity,
		AvailableQuantity: available,
	})
}

// HandleCalendar returns the booked date ranges for one piece of
// equipment.
func (h *EquipmentHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.reservations.EquipmentCalendar(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.ReservationItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleCreate adds a catalog entry.
func (h *EquipmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var eq domain.Equipment
	if err := decodeJSON(r, &eq); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	eq.ID = 0
	if err := h.equipment.CreateEquipment(r.Context(), &eq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

// HandleUpdate replaces a catalog entry.
func (h *EquipmentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var eq domain.Equipment
	if err := decodeJSON(r, &eq); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	eq.ID = id
	if err := h.equipment.UpdateEquipment(r.Context(), &eq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

// HandleDelete removes a catalog entry.
func (h *EquipmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.equipment.DeleteEquipment(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleReorder applies a new catalog sort order.
func (h *EquipmentHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var updates []domain.SortOrderUpdate
	if err := decodeJSON(r, &updates); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.equipment.ReorderEquipment(r.Context(), updates); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RegisterEquipmentRoutes registers catalog routes on the public and
// admin routers.
func RegisterEquipmentRoutes(public, admin *mux.Router, equipment service.EquipmentService, reservations service.ReservationService) {
	handler := NewEquipmentHandler(equipment, reservations)
	public.HandleFunc("/api/equipment", handler.HandleList).Methods("GET")
	public.HandleFunc("/api/equipment/{id:[0-9]+}/availability", handler.HandleAvailability).Methods("POST")
	public.HandleFunc("/api/equipment/{id:[0-9]+}/reservations", handler.HandleCalendar).Methods("GET")

	admin.HandleFunc("/api/equipment", handler.HandleCreate).Methods("POST")
	admin.HandleFunc("/api/equipment/reorder", handler.HandleReorder).Methods("POST")
	admin.HandleFunc("/api/equipment/{id:[0-9]+}", handler.HandleUpdate).Methods("PUT")
	admin.HandleFunc("/api/equipment/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE")
}

// pathID parses the {id} route variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return int32(id), true
}
