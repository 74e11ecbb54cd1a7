package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"nimbushost/internal/service"
	"nimbushost/internal/utils"
)

type SignupHandler struct {
	Service      *service.AuthService
	CookieTTL    time.Duration
	SecureCookie bool
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ServeHTTP handles POST /signup
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, "All fields are required")
		return
	}

	user, sessionToken, err := h.Service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, sessionToken, h.CookieTTL, h.SecureCookie)
	view := user.View()
	utils.JSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "User created successfully",
		User:    &view,
	})
}
