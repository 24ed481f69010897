package config

import (
	"os"
	"strings"
)

// AppConfig is the BFF configuration, loaded from the environment with
// caarlos0/env. Each group lives in its own file:
//   - auth.go: Session and login configuration
//   - backends.go: Wallet backend base URLs
//   - database.go: Local cache database and Redis configuration
//   - http.go: HTTP server configuration
//   - services.go: Service mode and reaper configuration
type AppConfig struct {
	// IsDev is set by DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	Backends BackendsConfig
	Auth     AuthConfig

	// Local cache
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	HTTP HTTPConfig

	// Services is a comma-separated list of http and reaper.
	Services string `env:"SERVICES" envDefault:"http"`
	Reaper   ReaperConfig

	Observability ObservabilityConfig
}

// Sanitize normalizes every sub-config after env loading.
func (c *AppConfig) Sanitize() {
	for _, sub := range []interface{ Sanitize() }{
		&c.Backends, &c.Auth, &c.HTTP, &c.Cache, &c.Reaper, &c.Observability,
	} {
		sub.Sanitize()
	}

	if !c.IsDev {
		c.IsDev = devNodeEnv(os.Getenv("NODE_ENV"))
	}
}

// devNodeEnv reports whether a NODE_ENV value names development mode.
func devNodeEnv(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "development", "dev":
		return true
	}
	return false
}

// GetEnabledServices parses SERVICES into a set of modes.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

func (c *AppConfig) serviceEnabled(mode ServiceMode) bool {
	enabled, err := c.GetEnabledServices()
	return err == nil && enabled[mode]
}

// IsHTTPServerEnabled is false when SERVICES fails to parse.
func (c *AppConfig) IsHTTPServerEnabled() bool { return c.serviceEnabled(ServiceModeHTTP) }

// IsReaperEnabled is false when SERVICES fails to parse.
func (c *AppConfig) IsReaperEnabled() bool { return c.serviceEnabled(ServiceModeReaper) }
