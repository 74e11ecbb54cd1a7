package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbushost/internal/server"
	"nimbushost/internal/service"
	"nimbushost/internal/store"
	"nimbushost/internal/token"
)

type capturingDispatcher struct {
	vars []map[string]string
}

func (d *capturingDispatcher) Send(_ context.Context, _, _ string, vars map[string]string) error {
	d.vars = append(d.vars, vars)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}

func newTestRouter(t *testing.T) (http.Handler, *capturingDispatcher) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	issuer := token.NewIssuer("test-secret", time.Hour)
	mail := &capturingDispatcher{}
	svc := service.NewAuthService(store.NewMemoryStore(), issuer, mail, "https://app.test")
	srv := server.NewServer(":0", svc, issuer, "https://app.test", false, log)
	return srv.Router(), mail
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestSignupFlow(t *testing.T) {
	router, mail := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/signup",
		`{"name":"Alice","email":"alice@x.com","password":"Secret123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "hash")

	c := sessionCookie(rec)
	require.NotNil(t, c, "signup must set the session cookie")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Positive(t, c.MaxAge)

	// check-auth with the fresh cookie resolves the same account
	rec = doJSON(t, router, http.MethodGet, "/check-auth", "", []*http.Cookie{c})
	require.Equal(t, http.StatusOK, rec.Code)

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	env = decode(t, rec)
	require.NoError(t, json.Unmarshal(env.User, &user))
	assert.Equal(t, "alice@x.com", user.Email)

	// verify with the emailed code
	require.Len(t, mail.vars, 1)
	rec = doJSON(t, router, http.MethodPost, "/verify-email",
		`{"code":"`+mail.vars[0]["code"]+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_verified":true`)
}

func TestSignupValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/signup", `{"name":"","email":"","password":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode(t, rec).Success)

	rec = doJSON(t, router, http.MethodPost, "/signup", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginAndLogout(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/signup",
		`{"name":"Alice","email":"alice@x.com","password":"Secret123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login",
		`{"email":"alice@x.com","password":"WrongPass"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec).Message)

	// the same generic failure for an unknown account
	rec = doJSON(t, router, http.MethodPost, "/login",
		`{"email":"nobody@x.com","password":"Secret123"}`, nil)
	assert.Equal(t, "Invalid email or password", decode(t, rec).Message)

	rec = doJSON(t, router, http.MethodPost, "/login",
		`{"name":"Alice","password":"Secret123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sessionCookie(rec))

	rec = doJSON(t, router, http.MethodPost, "/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestCheckAuthRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/check-auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated", decode(t, rec).Message)
}

func TestResetPasswordFlow(t *testing.T) {
	router, mail := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/signup",
		`{"name":"Alice","email":"alice@x.com","password":"Secret123"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/reset-password", `{"email":"nobody@x.com"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/reset-password", `{"email":"alice@x.com"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, mail.vars, 2)
	resetURL := mail.vars[1]["resetURL"]
	tok := resetURL[strings.LastIndex(resetURL, "/")+1:]
	require.Len(t, tok, 40)

	rec = doJSON(t, router, http.MethodPost, "/reset-password/"+tok, `{"password":"NewPass456"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// replaying the consumed token fails
	rec = doJSON(t, router, http.MethodPost, "/reset-password/"+tok, `{"password":"Again789"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec).Message)

	// only the new password logs in
	rec = doJSON(t, router, http.MethodPost, "/login",
		`{"email":"alice@x.com","password":"Secret123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/login",
		`{"email":"alice@x.com","password":"NewPass456"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
