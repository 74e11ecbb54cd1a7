package middleware

import (
	"context"
	"net/http"

	"nimbushost/internal/token"
	"nimbushost/internal/utils"
)

type contextKey string

// UserIDKey carries the authenticated user id through the request
// context once the session cookie checks out.
const UserIDKey contextKey = "user_id"

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "token"

// SessionAuth rejects requests without a valid session cookie and
// attaches the user id to the context otherwise.
func SessionAuth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookieName)
			if err != nil || c.Value == "" {
				utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthenticated",
				})
				return
			}

			userID, err := issuer.ParseSession(c.Value)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthenticated",
				})
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
