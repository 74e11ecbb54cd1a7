package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nimbushost/internal/service"
	"nimbushost/internal/utils"
)

type RequestResetHandler struct {
	Service *service.AuthService
}

type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ServeHTTP handles POST /reset-password
func (h *RequestResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RequestResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, "Email is required")
		return
	}

	if err := h.Service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password reset email sent successfully",
	})
}

type ResetPasswordHandler struct {
	Service *service.AuthService
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// ServeHTTP handles POST /reset-password/{token}
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, "Password is required")
		return
	}

	if err := h.Service.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}
