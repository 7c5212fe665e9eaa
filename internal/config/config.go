package config

import "time"

// Config is the root application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Poll      PollConfig      `yaml:"poll"`
	Directory DirectoryConfig `yaml:"directory"`
	UI        UIConfig        `yaml:"ui"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// APIConfig holds settings for the portal REST backend.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"         env:"PORTAL_API_BASE"         env-default:"http://127.0.0.1:8000"`
	Timeout        time.Duration `yaml:"timeout"          env:"PORTAL_API_TIMEOUT"      env-default:"10s"`
	UserAgent      string        `yaml:"user_agent"       env:"PORTAL_USER_AGENT"       env-default:"bmportal-cli"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"   env:"PORTAL_RATE_LIMIT_RPS"   env-default:"0"`
	RateLimitBurst int           `yaml:"rate_limit_burst" env:"PORTAL_RATE_LIMIT_BURST" env-default:"10"`
}

// SessionConfig holds settings for the durable session store.
// An empty Path resolves to $HOME/.bmportal/session. LockTimeout bounds the
// wait for another portal process that is touching the store.
type SessionConfig struct {
	Path        string        `yaml:"path"         env:"PORTAL_SESSION_PATH"`
	InMemory    bool          `yaml:"in_memory"    env:"PORTAL_SESSION_IN_MEMORY"    env-default:"false"`
	LockTimeout time.Duration `yaml:"lock_timeout" env:"PORTAL_SESSION_LOCK_TIMEOUT" env-default:"3s"`
}

// PollConfig holds unread-poller cadence.
type PollConfig struct {
	ComplaintsInterval    time.Duration `yaml:"complaints_interval"    env:"PORTAL_POLL_COMPLAINTS_INTERVAL"    env-default:"15s"`
	NotificationsInterval time.Duration `yaml:"notifications_interval" env:"PORTAL_POLL_NOTIFICATIONS_INTERVAL" env-default:"10s"`
	TriggerMinGap         time.Duration `yaml:"trigger_min_gap"        env:"PORTAL_POLL_TRIGGER_MIN_GAP"        env-default:"0s"`
}

// DirectoryConfig holds the user-directory endpoints for the broadcast composer.
type DirectoryConfig struct {
	PrimaryPath  string `yaml:"primary_path"  env:"PORTAL_DIRECTORY_PRIMARY_PATH"  env-default:"/api/users/"`
	FallbackPath string `yaml:"fallback_path" env:"PORTAL_DIRECTORY_FALLBACK_PATH" env-default:"/api/employees/"`
	PageSize     int    `yaml:"page_size"     env:"PORTAL_DIRECTORY_PAGE_SIZE"     env-default:"100"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Language     string `yaml:"language"      env:"PORTAL_LANGUAGE"      env-default:"en"`
	BadgeCeiling int    `yaml:"badge_ceiling" env:"PORTAL_BADGE_CEILING" env-default:"99"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"LOG_FILE"`
}

// MetricsConfig holds the prometheus listener used by long-running commands.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"PORTAL_METRICS_ADDR"`
}
