package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"nimbushost/internal/config"
	"nimbushost/internal/database"
	"nimbushost/internal/mailer"
	"nimbushost/internal/server"
	"nimbushost/internal/service"
	"nimbushost/internal/store"
	"nimbushost/internal/token"
)

func main() {
	cfg := config.Load()

	var users store.UserStore
	if cfg.DSN != "" {
		db, err := database.Connect(cfg.DSN)
		if err != nil {
			log.Fatalf("DB connect error: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db, "migrations"); err != nil {
			log.Fatalf("migrations error: %v", err)
		}
		users = store.NewMySQLStore(db)
	} else {
		log.Warn("DB_DSN not set, using in-memory store; data will not survive a restart")
		users = store.NewMemoryStore()
	}

	var dispatch mailer.Dispatcher
	if cfg.PostmarkServer != "" && cfg.PostmarkAccount != "" {
		dispatch = mailer.NewPostmark(cfg.PostmarkServer, cfg.PostmarkAccount, cfg.SenderEmail, cfg.SupportEmail)
	} else {
		log.Warn("postmark tokens not set, using dev mailer")
		dispatch = mailer.NewDev()
	}

	issuer := token.NewIssuer(cfg.JWTSecret, time.Duration(cfg.SessionTTLHrs)*time.Hour)
	authSvc := service.NewAuthService(users, issuer, dispatch, cfg.FrontendURL)

	srv := server.NewServer(":"+cfg.Port, authSvc, issuer, cfg.FrontendURL, !cfg.IsDev(), log.StandardLogger())
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
