package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
storage:
  data_dir: ./data/counters
session:
  secret: 0123456789abcdef0123456789abcdef
  rotation_period_hours: 24
classifier:
  debounce_window_seconds: 5
  debounce_cache_size: 100000
  blocked_ua_substrings:
    - HeadlessChrome
aggregation:
  flush_interval_seconds: 10
  grace_window_seconds: 120
  shard_count: 64
  top_referrers: 10
  max_unique_tracked: 100000
  flush_max_attempts: 5
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	tmpfile.Close()
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./data/counters", cfg.Storage.DataDir)
	assert.False(t, cfg.Storage.InMemory)
	assert.Equal(t, 24, cfg.Session.RotationPeriodHrs)
	assert.Equal(t, 5, cfg.Classifier.DebounceWindowSecs)
	assert.Equal(t, []string{"HeadlessChrome"}, cfg.Classifier.BlockedUASubstrs)
	assert.Equal(t, 64, cfg.Aggregation.ShardCount)
	assert.Equal(t, 10, cfg.Aggregation.TopReferrers)
}

func TestLoadConfig_MissingRequiredFields(t *testing.T) {
	// Drop the session block entirely
	invalidConfig := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
storage:
  data_dir: ./data/counters
classifier:
  debounce_window_seconds: 5
  debounce_cache_size: 100000
aggregation:
  flush_interval_seconds: 10
  grace_window_seconds: 120
  shard_count: 64
  top_referrers: 10
  max_unique_tracked: 100000
  flush_max_attempts: 5
`

	cfg, err := LoadConfig(writeTempConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "session")
}

func TestLoadConfig_SecretTooShort(t *testing.T) {
	// Fingerprints are only as strong as the secret; a short one must not
	// pass validation.
	shortSecret := `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
storage:
  data_dir: ./data/counters
session:
  secret: tooshort
  rotation_period_hours: 24
classifier:
  debounce_window_seconds: 5
  debounce_cache_size: 100000
aggregation:
  flush_interval_seconds: 10
  grace_window_seconds: 120
  shard_count: 64
  top_referrers: 10
  max_unique_tracked: 100000
  flush_max_attempts: 5
`

	cfg, err := LoadConfig(writeTempConfig(t, shortSecret))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yml")
	assert.Nil(t, cfg)
	assert.Error(t, err)
}
