package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Error(t, cfg.validate(), "scene is required")
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scene: scenes/drop.yaml
tick_rate: 120
hot_reload: false
server:
  listen_addr: 0.0.0.0:9000
  write_timeout: 2s
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "scenes/drop.yaml", cfg.Scene)
	assert.Equal(t, 120, cfg.TickRate)
	assert.False(t, cfg.HotReload)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 256, cfg.Server.MaxClients)
	assert.NoError(t, cfg.validate())
}

func TestConfig_ValidateTickRate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Scene = "x.yaml"
	cfg.TickRate = 0
	assert.Error(t, cfg.validate())
}
