package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Validate also resolves derived values such as the default session path.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Session.resolve(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Poll.validate(); err != nil {
		return fmt.Errorf("poll: %w", err)
	}
	if err := c.Directory.validate(); err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	if c.UI.BadgeCeiling <= 0 {
		return fmt.Errorf("ui.badge_ceiling must be > 0 (got %d)", c.UI.BadgeCeiling)
	}
	if strings.TrimSpace(c.UI.Language) == "" {
		c.UI.Language = "en"
	}
	return nil
}

func (a *APIConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", a.BaseURL)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")

	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	if a.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must be >= 0 (got %v)", a.RateLimitRPS)
	}
	if a.RateLimitRPS > 0 && a.RateLimitBurst <= 0 {
		return fmt.Errorf("rate_limit_burst must be > 0 when rate limiting is on (got %d)", a.RateLimitBurst)
	}
	return nil
}

func (s *SessionConfig) resolve() error {
	if s.InMemory || s.Path != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home dir: %w", err)
	}
	s.Path = filepath.Join(home, ".bmportal", "session")
	return nil
}

func (p *PollConfig) validate() error {
	if p.ComplaintsInterval <= 0 {
		return fmt.Errorf("complaints_interval must be > 0 (got %v)", p.ComplaintsInterval)
	}
	if p.NotificationsInterval <= 0 {
		return fmt.Errorf("notifications_interval must be > 0 (got %v)", p.NotificationsInterval)
	}
	if p.TriggerMinGap < 0 {
		return fmt.Errorf("trigger_min_gap must be >= 0 (got %v)", p.TriggerMinGap)
	}
	return nil
}

func (d *DirectoryConfig) validate() error {
	if d.PrimaryPath == "" {
		return fmt.Errorf("primary_path is required")
	}
	if d.PageSize < 1 || d.PageSize > 1000 {
		return fmt.Errorf("page_size must be in [1, 1000] (got %d)", d.PageSize)
	}
	return nil
}
