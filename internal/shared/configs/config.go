package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Storage     StorageConfig     `mapstructure:"storage" validate:"required"`
	Session     SessionConfig     `mapstructure:"session" validate:"required"`
	Classifier  ClassifierConfig  `mapstructure:"classifier" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig holds durable counter storage configuration.
type StorageConfig struct {
	DataDir  string `mapstructure:"data_dir" validate:"required"`
	InMemory bool   `mapstructure:"in_memory"`
}

// SessionConfig holds visitor fingerprinting configuration.
// The rotation period is fixed at deploy time, not per request.
type SessionConfig struct {
	Secret            string `mapstructure:"secret" validate:"required,min=16"`
	RotationPeriodHrs int    `mapstructure:"rotation_period_hours" validate:"required,min=1"`
}

// ClassifierConfig holds bot/noise classification configuration.
type ClassifierConfig struct {
	AllowLocal         bool     `mapstructure:"allow_local"`
	AllowFrame         bool     `mapstructure:"allow_frame"`
	IgnoreIPs          []string `mapstructure:"ignore_ips"`
	DebounceWindowSecs int      `mapstructure:"debounce_window_seconds" validate:"required,min=1"`
	DebounceCacheSize  int64    `mapstructure:"debounce_cache_size" validate:"required,min=1"`
	BlockedUASubstrs   []string `mapstructure:"blocked_ua_substrings"`
	BlockedUAPatterns  []string `mapstructure:"blocked_ua_patterns"`
}

// AggregationConfig holds counter aggregation configuration.
type AggregationConfig struct {
	FlushIntervalSecs int `mapstructure:"flush_interval_seconds" validate:"required,min=1"`
	GraceWindowSecs   int `mapstructure:"grace_window_seconds" validate:"required,min=1"`
	ShardCount        int `mapstructure:"shard_count" validate:"required,min=1,max=4096"`
	TopReferrers      int `mapstructure:"top_referrers" validate:"required,min=1"`
	MaxUniqueTracked  int `mapstructure:"max_unique_tracked" validate:"required,min=1"`
	FlushMaxAttempts  int `mapstructure:"flush_max_attempts" validate:"required,min=1"`
}
