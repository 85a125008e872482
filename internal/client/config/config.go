package config

import (
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/storage"
)

// Config holds runtime settings for the MochaMagic terminal storefront.
//
// Fields:
//   - Storage: key-value backend holding users, session, cart, ledger and orders.
//   - SecretKey / TokenValidityDuration: session token signing; must match the
//     server when the rewards API is used.
//   - LoginByName: also accept the full name as login identifier.
//   - SignupDelay, LoginDelay, LogoutDelay, RedeemReloadDelay: pause before the
//     view changes after the corresponding action.
//   - BannerTTL: how long a banner stays visible.
//   - RewardsAPIAddr: host:port of the rewards gRPC endpoint; empty disables it.
//   - RewardsAPITimeout: per-call timeout for the rewards API.
//   - LogLevel: slog level; logs go to stderr.
type Config struct {
	Storage               storage.Config
	SecretKey             string
	TokenValidityDuration time.Duration
	LoginByName           bool
	SignupDelay           time.Duration
	LoginDelay            time.Duration
	LogoutDelay           time.Duration
	RedeemReloadDelay     time.Duration
	BannerTTL             time.Duration
	RewardsAPIAddr        string
	RewardsAPITimeout     time.Duration
	LogLevel              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = storage.Config{
		Backend:    storage.BackendSQLite,
		SQLitePath: "mochamagic.db",
	}
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.LoginByName = false
	c.SignupDelay = 2 * time.Second
	c.LoginDelay = 1500 * time.Millisecond
	c.LogoutDelay = time.Second
	c.RedeemReloadDelay = 3 * time.Second
	c.BannerTTL = 5 * time.Second
	c.RewardsAPIAddr = ""
	c.RewardsAPITimeout = 5 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// .env/environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
