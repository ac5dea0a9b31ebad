package updatekit

import (
	"time"
)

// Strategy selects how an available update is surfaced by the host's
// presentation layer.
type Strategy string

const (
	StrategyFlexible  Strategy = "flexible"
	StrategyImmediate Strategy = "immediate"
	StrategyOptional  Strategy = "optional"
)

const (
	DefaultBackgroundCheckIntervalHours = 24
	DefaultCacheDurationHours           = 6
	DefaultRequestTimeoutSeconds        = 30
)

// AnalyticsFunc receives check lifecycle events when analytics is
// enabled. It must be fast; it is called inline on the check path.
type AnalyticsFunc func(event string, data map[string]any)

// Config is an immutable description of how a session checks for
// updates. At least one of PlayStoreID, AppStoreID or CustomUpdateURL
// must be set; everything else has a usable default.
//
// The struct serializes to JSON so background tasks can reuse the
// foreground configuration from the store.
type Config struct {
	PlayStoreID     string `json:"play_store_id,omitempty"`
	AppStoreID      string `json:"app_store_id,omitempty"`
	CustomUpdateURL string `json:"custom_update_url,omitempty"`

	CustomHeaders map[string]string `json:"custom_headers,omitempty"`

	Strategy Strategy `json:"strategy,omitempty"`

	BackgroundCheckIntervalHours uint `json:"background_check_interval_hours,omitempty"`
	EnableBackgroundCheck        bool `json:"enable_background_check,omitempty"`

	// Caching is on unless explicitly disabled.
	DisableCaching     bool `json:"disable_caching,omitempty"`
	CacheDurationHours uint `json:"cache_duration_hours,omitempty"`

	RequestTimeoutSeconds uint `json:"request_timeout_seconds,omitempty"`

	WiFiOnly bool `json:"wifi_only,omitempty"`

	CustomUserAgent string `json:"custom_user_agent,omitempty"`
	RegionCode      string `json:"region_code,omitempty"`
	TestGroup       string `json:"test_group,omitempty"`

	EnableAnalytics bool          `json:"enable_analytics,omitempty"`
	Analytics       AnalyticsFunc `json:"-"`
}

// Validate rejects a configuration that names no update source at all.
// Called at session construction, not struct construction.
func (c Config) Validate() error {
	if c.PlayStoreID == "" && c.AppStoreID == "" && c.CustomUpdateURL == "" {
		return ErrConfiguration
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.BackgroundCheckIntervalHours == 0 {
		c.BackgroundCheckIntervalHours = DefaultBackgroundCheckIntervalHours
	}
	if c.CacheDurationHours == 0 {
		c.CacheDurationHours = DefaultCacheDurationHours
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.Strategy == "" {
		c.Strategy = StrategyFlexible
	}
	return c
}

// CachingEnabled reports whether check results are persisted and served
// cache-first.
func (c Config) CachingEnabled() bool {
	return !c.DisableCaching
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheDurationHours) * time.Hour
}

func (c Config) BackgroundInterval() time.Duration {
	return time.Duration(c.BackgroundCheckIntervalHours) * time.Hour
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
