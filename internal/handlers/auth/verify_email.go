package auth

import (
	"encoding/json"
	"net/http"

	"nimbushost/internal/service"
	"nimbushost/internal/utils"
)

type VerifyEmailHandler struct {
	Service *service.AuthService
}

type VerifyEmailRequest struct {
	Code string `json:"code" validate:"required"`
}

// ServeHTTP handles POST /verify-email
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		badRequest(w, "Code is required")
		return
	}

	user, err := h.Service.VerifyEmail(r.Context(), req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	view := user.View()
	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Email verified successfully",
		User:    &view,
	})
}
