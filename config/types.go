package config

import "time"

type AppConfig struct {
	DBDriver   string `yaml:"db_driver" env:"MINTVERDE_DB_DRIVER" env-default:"sqlite"`
	DBPath     string `yaml:"db_path" env:"MINTVERDE_DB_PATH" env-default:"data/mintverde.db"`
	DBURL      string `yaml:"db_url" env:"MINTVERDE_DB_URL"`
	ListenAddr string `yaml:"listen_addr" env:"MINTVERDE_LISTEN_ADDR" env-default:"0.0.0.0:8080"`
	AppEnv     string `yaml:"app_env" env:"MINTVERDE_APP_ENV"`

	// SessionCookieTTL bounds the cookie, not the provider session: the
	// identity service re-validates the token on every request.
	SessionCookieTTL time.Duration `yaml:"session_cookie_ttl" env:"MINTVERDE_SESSION_COOKIE_TTL" env-default:"1440h"`

	Identity  IdentityConfig  `yaml:"identity"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Security  SecurityConfig  `yaml:"security"`
}

type IdentityConfig struct {
	APIURL            string `yaml:"api_url" env:"MINTVERDE_IDENTITY_API_URL"`
	APIKey            string `yaml:"api_key" env:"MINTVERDE_IDENTITY_API_KEY"`
	Provider          string `yaml:"provider" env:"MINTVERDE_IDENTITY_PROVIDER" env-default:"google"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec" env:"MINTVERDE_IDENTITY_REQUEST_TIMEOUT" env-default:"10"`
}

type SchedulerConfig struct {
	Enabled         bool `yaml:"enabled" env:"MINTVERDE_SCHEDULER_ENABLED" env-default:"true"`
	IntervalSeconds int  `yaml:"interval_seconds" env:"MINTVERDE_SCHEDULER_INTERVAL_SECONDS" env-default:"300"`
	MaxJobsPerTick  int  `yaml:"max_jobs_per_tick" env:"MINTVERDE_SCHEDULER_MAX_JOBS_PER_TICK" env-default:"20"`
}

type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"MINTVERDE_SECURITY_ALLOWED_ORIGINS" env-separator:","`
	CookieSecure   bool     `yaml:"cookie_secure" env:"MINTVERDE_SECURITY_COOKIE_SECURE" env-default:"true"`
}

const maxSessionCookieTTL = 60 * 24 * time.Hour

func (c *AppConfig) EffectiveCookieTTL() time.Duration {
	ttl := maxSessionCookieTTL
	if c != nil && c.SessionCookieTTL > 0 {
		ttl = c.SessionCookieTTL
	}
	if ttl > maxSessionCookieTTL {
		return maxSessionCookieTTL
	}
	return ttl
}

func (c *IdentityConfig) RequestTimeout() time.Duration {
	if c == nil || c.RequestTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}
