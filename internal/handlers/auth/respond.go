package auth

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"nimbushost/internal/service"
	"nimbushost/internal/utils"
)

var validate = validator.New()

// writeServiceError maps a service error onto the response envelope.
// Domain failures answer 400 with a fixed message; anything unknown is
// internal and answers 500 without leaking the underlying error.
func writeServiceError(w http.ResponseWriter, err error) {
	msg := ""
	switch {
	case errors.Is(err, service.ErrValidation):
		msg = "All fields are required"
	case errors.Is(err, service.ErrConflict):
		msg = "User already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		msg = "Invalid email or password"
	case errors.Is(err, service.ErrInvalidToken):
		msg = "Invalid or expired token"
	case errors.Is(err, service.ErrNotFound):
		msg = "User not found"
	case errors.Is(err, service.ErrNotificationDelivery):
		msg = "Failed to send email"
	default:
		log.WithError(err).Error("internal error")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Something went wrong",
		})
		return
	}
	utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
}
