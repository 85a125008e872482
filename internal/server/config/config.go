// Package config handles configuration for the server component,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/storage"
)

// Config holds runtime settings for the MochaMagic server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the rewards gRPC endpoint.
//   - EndpointAddrHTTP: bind address for the storefront HTTP API.
//   - Storage: key-value backend shared with the terminal client.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: session token lifetime.
//   - LoginByName: let customers log in with their full name as well as email.
//   - LogLevel / LogFormat: slog level and handler ("json" or "text").
type Config struct {
	EndpointAddrGRPC      string
	EndpointAddrHTTP      string
	Storage               storage.Config
	SecretKey             string
	TokenValidityDuration time.Duration
	LoginByName           bool
	LogLevel              string
	LogFormat             string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.Storage = storage.Config{
		Backend:    storage.BackendSQLite,
		SQLitePath: "mochamagic.db",
	}
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.LoginByName = false
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from .env/environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
