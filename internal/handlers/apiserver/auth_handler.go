package apiserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"socialnet/internal/auth"
	"socialnet/internal/middleware"
	"socialnet/internal/services"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService services.AuthService
	blacklist   auth.TokenBlacklist
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{authService: authService, blacklist: blacklist}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if len(req.Password) < 6 {
		writeJSONError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /auth/logout: the token's JTI goes on the blacklist
// until the token would have expired anyway.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok || claims.ExpiresAt == nil {
		writeJSONError(w, http.StatusUnauthorized, "no valid token in request")
		return
	}

	if err := h.blacklist.Add(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		log.Printf("failed to blacklist token %s: %v", claims.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
