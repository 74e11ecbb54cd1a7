package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port            string
	DSN             string
	JWTSecret       string
	SessionTTLHrs   int
	FrontendURL     string
	Env             string
	PostmarkServer  string
	PostmarkAccount string
	SenderEmail     string
	SupportEmail    string
}

func Load() *Config {
	_ = godotenv.Load()

	// session cookie lifetime, defaults to 7 days
	ttl, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "168"))
	if err != nil {
		ttl = 168
	}

	c := &Config{
		Port:            getEnv("PORT", "8080"),
		DSN:             os.Getenv("DB_DSN"),
		JWTSecret:       mustEnv("JWT_SECRET"),
		SessionTTLHrs:   ttl,
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		Env:             getEnv("ENV", "dev"),
		PostmarkServer:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		PostmarkAccount: os.Getenv("POSTMARK_ACCOUNT_TOKEN"),
		SenderEmail:     getEnv("SENDER_EMAIL", "noreply@nimbushost.io"),
		SupportEmail:    getEnv("SUPPORT_EMAIL", "support@nimbushost.io"),
	}
	log.Infof("config loaded: env=%s port=%s", c.Env, c.Port)
	return c
}

// IsDev reports whether the process runs outside production. Session
// cookies drop the Secure flag in dev so plain-http localhost works.
func (c *Config) IsDev() bool {
	return c.Env != "prod" && c.Env != "production"
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env: %s", k)
	}
	return v
}
