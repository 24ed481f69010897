package config

import (
	"strings"
	"time"
)

// Default wallet backend base URLs used when the corresponding variable is unset or blank.
const (
	DefaultHolderAPIBaseURL   = "https://super-duper-spoon-7v77qpj4pjw6hwrj9-8002.app.github.dev"
	DefaultIssuerAPIBaseURL   = "https://super-duper-spoon-7v77qpj4pjw6hwrj9-8000.app.github.dev"
	DefaultVerifierAPIBaseURL = "https://super-duper-spoon-7v77qpj4pjw6hwrj9-8001.app.github.dev"
)

// BackendsConfig holds the base URLs of the holder, issuer and verifier APIs.
// Values are read once at startup.
type BackendsConfig struct {
	HolderBaseURL   string `env:"HOLDER_API_BASE_URL"`
	IssuerBaseURL   string `env:"ISSUER_API_BASE_URL"`
	VerifierBaseURL string `env:"VERIFIER_API_BASE_URL"`

	// Timeout bounds a single backend round trip. Zero leaves only the request context in charge.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"0s"`
}

// Sanitize trims the configured URLs and substitutes defaults for blank values.
func (b *BackendsConfig) Sanitize() {
	b.HolderBaseURL = orDefault(b.HolderBaseURL, DefaultHolderAPIBaseURL)
	b.IssuerBaseURL = orDefault(b.IssuerBaseURL, DefaultIssuerAPIBaseURL)
	b.VerifierBaseURL = orDefault(b.VerifierBaseURL, DefaultVerifierAPIBaseURL)
	if b.Timeout < 0 {
		b.Timeout = 0
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
