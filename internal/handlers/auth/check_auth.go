package auth

import (
	"net/http"

	"nimbushost/internal/middleware"
	"nimbushost/internal/service"
	"nimbushost/internal/utils"
)

type CheckAuthHandler struct {
	Service *service.AuthService
}

// ServeHTTP handles GET /check-auth. Runs behind the session
// middleware, which put the user id into the context.
func (h *CheckAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Unauthenticated",
		})
		return
	}

	user, err := h.Service.CheckAuth(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	view := user.View()
	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		User:    &view,
	})
}
