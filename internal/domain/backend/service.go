// Package backend names the wallet backends a session can talk to.
package backend

import "strings"

// Service identifies one of the three wallet backend APIs.
type Service string

const (
	ServiceHolder   Service = "holder"
	ServiceIssuer   Service = "issuer"
	ServiceVerifier Service = "verifier"
)

// DefaultService is used when nothing else has been selected or stored.
const DefaultService = ServiceHolder

// Services returns every known backend in display order.
func Services() []Service {
	return []Service{ServiceHolder, ServiceIssuer, ServiceVerifier}
}

// Valid reports whether s is one of the known backends.
func (s Service) Valid() bool {
	switch s {
	case ServiceHolder, ServiceIssuer, ServiceVerifier:
		return true
	default:
		return false
	}
}

// ParseService normalizes raw input, falling back to DefaultService for blank or unknown values.
func ParseService(raw string) Service {
	s := Service(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return DefaultService
}

// Or returns s if it is valid, otherwise fallback.
func (s Service) Or(fallback Service) Service {
	if s.Valid() {
		return s
	}
	return fallback
}

func (s Service) String() string { return string(s) }
