package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string
	Env  string

	// Database
	DatabasePath string

	// Identity provider
	FirebaseProjectID            string
	FirebaseServiceAccountJSON   string
	FirebaseServiceAccountBase64 string
	FirebaseServiceAccountFile   string
	AuthSecret                   string
	AuthTimeout                  time.Duration

	// CORS
	CORSAllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DatabasePath: getEnv("DATABASE_PATH", "./pocketledger.db"),

		FirebaseProjectID:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON:   getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountBase64: getEnv("FIREBASE_SERVICE_ACCOUNT_BASE64", ""),
		FirebaseServiceAccountFile:   getEnv("FIREBASE_SERVICE_ACCOUNT_FILE", ""),
		AuthSecret:                   getEnv("AUTH_SECRET", ""),
		AuthTimeout:                  getEnvDuration("AUTH_TIMEOUT", 10*time.Second),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
	}
}

// Validate checks the loaded configuration and returns an error describing
// the first problem found.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if c.AuthTimeout <= 0 {
		return fmt.Errorf("AUTH_TIMEOUT must be positive, got %s", c.AuthTimeout)
	}
	if c.IsProduction() && !c.UseFirebase() && c.AuthSecret == "" {
		return fmt.Errorf("production requires Firebase credentials or AUTH_SECRET")
	}
	return nil
}

// UseFirebase reports whether any Firebase credential source is configured.
func (c *Config) UseFirebase() bool {
	return c.FirebaseServiceAccountJSON != "" ||
		c.FirebaseServiceAccountBase64 != "" ||
		c.FirebaseServiceAccountFile != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
