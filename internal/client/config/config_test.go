package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, storage.BackendSQLite, c.Storage.Backend)
	assert.Equal(t, "mochamagic.db", c.Storage.SQLitePath)
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.False(t, c.LoginByName)
	assert.Equal(t, 2*time.Second, c.SignupDelay)
	assert.Equal(t, 1500*time.Millisecond, c.LoginDelay)
	assert.Equal(t, time.Second, c.LogoutDelay)
	assert.Equal(t, 3*time.Second, c.RedeemReloadDelay)
	assert.Equal(t, 5*time.Second, c.BannerTTL)
	assert.Empty(t, c.RewardsAPIAddr)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, 5*time.Second, cfg.BannerTTL)
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvStorage, "memory")
	t.Setenv(EnvRewardsAPIAddr, "127.0.0.1:50051")
	t.Setenv(EnvLoginByName, "true")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "memory", c.Storage.Backend)
	assert.Equal(t, "127.0.0.1:50051", c.RewardsAPIAddr)
	assert.True(t, c.LoginByName)
}

func TestParseEnv_PanicsOnMalformedBool(t *testing.T) {
	t.Setenv(EnvLoginByName, "sometimes")

	assert.Panics(t, func() { parseEnv(&Config{}) })
}
