package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"storage": {"backend": "memory"},
		"rewards_api_addr": "rewards:50051",
		"banner_ttl": "10s",
		"login_delay": 250000000,
		"login_by_name": true
	}`), 0o600))

	os.Args = []string{"testbin", "--config=" + path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "mochamagic.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "rewards:50051", cfg.RewardsAPIAddr)
	assert.Equal(t, 10*time.Second, cfg.BannerTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.LoginDelay)
	assert.Equal(t, 2*time.Second, cfg.SignupDelay)
	assert.True(t, cfg.LoginByName)
}

func TestParseJson_InvalidDurationPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"banner_ttl": true}`), 0o600))
	os.Args = []string{"testbin", "-c", path}

	assert.Panics(t, func() { parseJson(&Config{}) })
}
