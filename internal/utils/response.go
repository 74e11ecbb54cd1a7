package utils

import (
	"encoding/json"
	"net/http"

	"nimbushost/internal/models"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	User    *models.UserView `json:"user,omitempty"`
}

func JSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
