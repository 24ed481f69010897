package config

import (
	"strings"
	"time"
)

// AuthConfig groups session and login configuration.
type AuthConfig struct {
	// CookieName is the name of the browser session cookie.
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"session_id"`

	// SessionTTL bounds how long a stored session survives without activity.
	// A token carrying an earlier exp claim shortens it.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"AUTH_SESSION_KEY_PREFIX" envDefault:"cryptlocker:session:"`

	// DefaultService is the backend used when a session has none stored.
	DefaultService string `env:"AUTH_DEFAULT_SERVICE" envDefault:"holder"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.CookieName = strings.TrimSpace(a.CookieName)
	if a.CookieName == "" {
		a.CookieName = "session_id"
	}
	if a.SessionTTL < time.Minute {
		a.SessionTTL = time.Minute
	}
	if strings.TrimSpace(a.KeyPrefix) == "" {
		a.KeyPrefix = "cryptlocker:session:"
	}
	a.DefaultService = strings.ToLower(strings.TrimSpace(a.DefaultService))
	switch a.DefaultService {
	case "holder", "issuer", "verifier":
	default:
		a.DefaultService = "holder"
	}
}
