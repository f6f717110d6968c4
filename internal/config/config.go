// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"cardly/internal/render"
	"cardly/internal/storage"
	"cardly/internal/store"

	"github.com/joho/godotenv"
)

// Config is everything cmd/cardly needs to start.
type Config struct {
	Port          string
	PublicOrigin  string // scheme://host cards are shared from
	Development   bool
	LogLevel      string
	CORSOrigins   []string
	QRProvider    string
	OwnerUsername string
	OwnerPassword string

	Store   store.Config
	Storage storage.Config
}

// LoadEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are not an error; variables already set in the
// environment win.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Port:          GetEnv("PORT", "8069"),
		Development:   GetEnv("APP_ENV") == "development",
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		QRProvider:    GetEnv("QR_PROVIDER_URL", render.DefaultQRProvider),
		OwnerUsername: GetEnv("OWNER_USERNAME"),
		OwnerPassword: GetEnv("OWNER_PASSWORD"),
		Store:         store.ConfigFromEnv(),
		Storage:       storage.ConfigFromEnv(),
	}

	cfg.PublicOrigin = strings.TrimRight(GetEnv("PUBLIC_ORIGIN", "http://localhost:"+cfg.Port), "/")

	for _, o := range strings.Split(GetEnv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.PublicOrigin}
	}

	return cfg
}

// GetEnv returns the variable, or the default when it is unset or empty.
func GetEnv(key string, defaultValue ...string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}
