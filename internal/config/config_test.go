package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.InDelta(t, 1.0, cfg.Scheduler.TransitWeight+cfg.Scheduler.TimeOfDayWeight+
		cfg.Scheduler.PopularityWeight+cfg.Scheduler.ClusteringWeight+
		cfg.Scheduler.SlotUsageWeight, 1e-9, "default weights sum to one")
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
logging:
  level: debug
transit:
  cache_backend: redis
  cache_ttl_hours: 48
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "redis", cfg.Transit.CacheBackend)
	assert.Equal(t, 48, cfg.Transit.CacheTTLHours)

	// Untouched sections keep their defaults.
	assert.Equal(t, 500, cfg.Transit.DebounceMillis)
	assert.Equal(t, 10, cfg.Transit.MaxBatchSize)
	assert.InDelta(t, 0.30, cfg.Scheduler.TransitWeight, 1e-9)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
