package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	// Run from an empty directory so no config file is picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "monitor.db", cfg.Database.Path)
	assert.False(t, cfg.Database.ClearOnStartup)
	assert.Empty(t, cfg.YouTube.APIKeys)
	assert.Equal(t, 15*time.Second, cfg.YouTube.RequestTimeout)
	assert.Empty(t, cfg.Monitor.Queries)
	assert.Equal(t, 7, cfg.Monitor.RetentionDays)
	assert.Equal(t, 100, cfg.Monitor.RefreshTopUp)
	assert.Equal(t, 60, cfg.Monitor.ShortsMaxDuration)
	assert.Equal(t, "Asia/Kolkata", cfg.Display.Timezone)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	viper.Reset()

	wd, err := os.Getwd()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(`
server:
  port: 9090
monitor:
  queries:
    - election
    - budget
  retentiondays: 3
youtube:
  apikeys:
    - key-1
    - key-2
`), 0o644))
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"election", "budget"}, cfg.Monitor.Queries)
	assert.Equal(t, 3, cfg.Monitor.RetentionDays)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.YouTube.APIKeys)
	// Untouched sections keep their defaults.
	assert.Equal(t, "monitor.db", cfg.Database.Path)
}
