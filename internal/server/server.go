package server

import (
	"fmt"
	"net/http"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"nimbushost/internal/handlers"
	"nimbushost/internal/handlers/auth"
	"nimbushost/internal/middleware"
	"nimbushost/internal/service"
	"nimbushost/internal/token"
)

type Server struct {
	Addr         string
	Auth         *service.AuthService
	Issuer       *token.Issuer
	FrontendURL  string
	SecureCookie bool
	Log          *logrus.Logger
}

func NewServer(addr string, authSvc *service.AuthService, issuer *token.Issuer, frontendURL string, secureCookie bool, log *logrus.Logger) *Server {
	return &Server{
		Addr:         addr,
		Auth:         authSvc,
		Issuer:       issuer,
		FrontendURL:  frontendURL,
		SecureCookie: secureCookie,
		Log:          log,
	}
}

func HandlerFunc(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// middlewares
	r.Use(logger.Logger("router", s.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "Nimbus Host API is running....")
	})
	r.Get("/health", handlers.HealthCheck)

	cookieTTL := s.Issuer.SessionTTL()

	// public auth routes
	r.Post("/signup", HandlerFunc(&auth.SignupHandler{
		Service:      s.Auth,
		CookieTTL:    cookieTTL,
		SecureCookie: s.SecureCookie,
	}))
	r.Post("/login", HandlerFunc(&auth.LoginHandler{
		Service:      s.Auth,
		CookieTTL:    cookieTTL,
		SecureCookie: s.SecureCookie,
	}))
	r.Post("/logout", HandlerFunc(&auth.LogoutHandler{SecureCookie: s.SecureCookie}))
	r.Post("/verify-email", HandlerFunc(&auth.VerifyEmailHandler{Service: s.Auth}))
	r.Post("/reset-password", HandlerFunc(&auth.RequestResetHandler{Service: s.Auth}))
	r.Post("/reset-password/{token}", HandlerFunc(&auth.ResetPasswordHandler{Service: s.Auth}))

	// session-protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(s.Issuer))
		r.Get("/check-auth", HandlerFunc(&auth.CheckAuthHandler{Service: s.Auth}))
	})

	return r
}

func (s *Server) Run() error {
	s.Log.Infof("server running on %s", s.Addr)
	return http.ListenAndServe(s.Addr, s.Router())
}
