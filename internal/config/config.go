package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process-level configuration, read from an optional YAML
// file. Absent file or absent fields fall back to defaults; secrets (API
// keys, DSNs) stay in the environment.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Transit   TransitConfig   `yaml:"transit"`
}

// LoggingConfig selects the zerolog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig holds the placement scoring weights.
type SchedulerConfig struct {
	TransitWeight    float64 `yaml:"transit_weight"`
	TimeOfDayWeight  float64 `yaml:"time_of_day_weight"`
	PopularityWeight float64 `yaml:"popularity_weight"`
	ClusteringWeight float64 `yaml:"clustering_weight"`
	SlotUsageWeight  float64 `yaml:"slot_usage_weight"`
}

// TransitConfig tunes the transit-time resolver and selects its cache
// backend.
type TransitConfig struct {
	CacheBackend   string `yaml:"cache_backend"` // memory | redis | postgres
	CacheTTLHours  int    `yaml:"cache_ttl_hours"`
	DebounceMillis int    `yaml:"debounce_millis"`
	MaxBatchSize   int    `yaml:"max_batch_size"`
	ProviderURL    string `yaml:"provider_url"`
	Profile        string `yaml:"profile"`
	RedisAddr      string `yaml:"redis_addr"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{
			TransitWeight:    0.30,
			TimeOfDayWeight:  0.20,
			PopularityWeight: 0.10,
			ClusteringWeight: 0.15,
			SlotUsageWeight:  0.25,
		},
		Transit: TransitConfig{
			CacheBackend:   "memory",
			CacheTTLHours:  24,
			DebounceMillis: 500,
			MaxBatchSize:   10,
			ProviderURL:    "https://api.openrouteservice.org",
			Profile:        "foot-walking",
			RedisAddr:      "localhost:6379",
		},
	}
}

// Load reads the configuration from the given path, layered over defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: open %q: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("load config: decode %q: %w", path, err)
	}
	return cfg, nil
}
