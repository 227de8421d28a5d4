// Package config loads application settings from the environment.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	AllowedOrigins []string
}

// Load reads an optional .env file, then the environment, applying
// development defaults for anything unset.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "6000"),
		MongoURI:       getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName:         getenv("DB_NAME", "agrinet"),
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ","),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
