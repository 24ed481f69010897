// Package walletapi is the typed client for the holder, issuer and verifier wallet backends.
package walletapi

import (
	"strings"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
)

// Router maps a backend service and a path onto an absolute URL.
// Base URLs are fixed at construction.
type Router struct {
	bases map[backend.Service]string
}

// NewRouter builds a Router from sanitized backend configuration.
// Blank entries fall back to the compiled-in defaults.
func NewRouter(cfg config.BackendsConfig) *Router {
	cfg.Sanitize()
	return &Router{bases: map[backend.Service]string{
		backend.ServiceHolder:   cfg.HolderBaseURL,
		backend.ServiceIssuer:   cfg.IssuerBaseURL,
		backend.ServiceVerifier: cfg.VerifierBaseURL,
	}}
}

// BaseURL returns the configured base for svc. Unknown services resolve to the default backend.
func (r *Router) BaseURL(svc backend.Service) string {
	return r.bases[svc.Or(backend.DefaultService)]
}

// ResolveURL joins the service base and path with exactly one slash between them.
func (r *Router) ResolveURL(svc backend.Service, path string) string {
	return strings.TrimRight(r.BaseURL(svc), "/") + "/" + strings.TrimLeft(path, "/")
}
