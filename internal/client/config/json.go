package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/flagx"
	"github.com/dmitrijs2005/mochamagic/internal/storage"
	"github.com/dmitrijs2005/mochamagic/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, non-empty
// values are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	Storage               storage.Config `json:"storage"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	LoginByName           *bool          `json:"login_by_name"`
	SignupDelay           timex.Duration `json:"signup_delay"`
	LoginDelay            timex.Duration `json:"login_delay"`
	LogoutDelay           timex.Duration `json:"logout_delay"`
	RedeemReloadDelay     timex.Duration `json:"redeem_reload_delay"`
	BannerTTL             timex.Duration `json:"banner_ttl"`
	RewardsAPIAddr        string         `json:"rewards_api_addr"`
	RewardsAPITimeout     timex.Duration `json:"rewards_api_timeout"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies the fields present in the file into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.Storage.Merge(jc.Storage)
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.LoginByName != nil {
		cfg.LoginByName = *jc.LoginByName
	}
	if jc.RewardsAPIAddr != "" {
		cfg.RewardsAPIAddr = jc.RewardsAPIAddr
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}

	durations := []struct {
		dst *time.Duration
		src timex.Duration
	}{
		{&cfg.TokenValidityDuration, jc.TokenValidityDuration},
		{&cfg.SignupDelay, jc.SignupDelay},
		{&cfg.LoginDelay, jc.LoginDelay},
		{&cfg.LogoutDelay, jc.LogoutDelay},
		{&cfg.RedeemReloadDelay, jc.RedeemReloadDelay},
		{&cfg.BannerTTL, jc.BannerTTL},
		{&cfg.RewardsAPITimeout, jc.RewardsAPITimeout},
	}
	for _, d := range durations {
		if d.src.Duration != 0 {
			*d.dst = d.src.Duration
		}
	}
}
