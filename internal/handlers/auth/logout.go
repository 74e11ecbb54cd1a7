package auth

import (
	"net/http"

	"nimbushost/internal/utils"
)

type LogoutHandler struct {
	SecureCookie bool
}

// ServeHTTP handles POST /logout. The session token stays valid until
// it expires; logout only tells the client to drop the cookie.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.SecureCookie)
	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}
