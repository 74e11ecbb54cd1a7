package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbushost/internal/middleware"
	"nimbushost/internal/token"
)

func TestSessionAuth(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(middleware.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.SessionAuth(issuer)(next)

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/check-auth", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := token.NewIssuer("test-secret", -time.Minute).IssueSession("user-1")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: expired})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		tok, err := issuer.IssueSession("user-1")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: tok})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotUserID)
	})
}
