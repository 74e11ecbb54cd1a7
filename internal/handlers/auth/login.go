package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"nimbushost/internal/service"
	"nimbushost/internal/utils"
)

type LoginHandler struct {
	Service      *service.AuthService
	CookieTTL    time.Duration
	SecureCookie bool
}

// Either name or email identifies the account.
type LoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// ServeHTTP handles POST /login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil || (req.Name == "" && req.Email == "") {
		badRequest(w, "All fields are required")
		return
	}

	user, sessionToken, err := h.Service.Login(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setSessionCookie(w, sessionToken, h.CookieTTL, h.SecureCookie)
	view := user.View()
	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    &view,
	})
}
