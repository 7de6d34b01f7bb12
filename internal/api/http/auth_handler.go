package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"outdoor-rental-backend/internal/service"
)

// AuthHandler handles back-office login and session introspection.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// HandleLogin exchanges admin credentials for a Bearer token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// HandleLogout acknowledges logout. Tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleStatus reports who is logged in.
func (h *AuthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := AdminFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"username":      claims.Username,
	})
}

// RegisterAuthRoutes registers the public login route and the protected
// session routes.
func RegisterAuthRoutes(public, admin *mux.Router, auth service.AuthService) {
	handler := NewAuthHandler(auth)
	public.HandleFunc("/api/auth/login", handler.HandleLogin).Methods("POST")
	admin.HandleFunc("/api/auth/logout", handler.HandleLogout).Methods("POST")
	admin.HandleFunc("/api/auth/status", handler.HandleStatus).Methods("GET")
}
