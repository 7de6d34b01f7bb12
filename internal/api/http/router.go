package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"outdoor-rental-backend/internal/security"
	"outdoor-rental-backend/internal/service"
	"outdoor-rental-backend/internal/storage"
)

// RouterDeps bundles everything the API needs.
type RouterDeps struct {
	Equipment    service.EquipmentService
	Reservations service.ReservationService
	Auth         service.AuthService
	Tokens       security.TokenManager
	Images       *storage.ImageStore
	MaxFileSize  int64
}

// NewRouter builds the full route table. Admin routes share the router's
// path space but pass through the Bearer token middleware.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	public := router.NewRoute().Subrouter()
	admin := router.NewRoute().Subrouter()
	admin.Use(AuthMiddleware(deps.Tokens))

	RegisterAuthRoutes(public, admin, deps.Auth)
	RegisterEquipmentRoutes(public, admin, deps.Equipment, deps.Reservations)
	RegisterReservationRoutes(public, admin, deps.Reservations)
	RegisterUploadRoutes(public, admin, deps.Images, deps.MaxFileSize)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return router
}
