package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - http",
			input:    "http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:     "single service - reaper",
			input:    "reaper",
			expected: map[ServiceMode]bool{ServiceModeReaper: true},
		},
		{
			name:     "services with spaces and duplicates",
			input:    " http , reaper , http ",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeReaper: true},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,scheduler",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	cfg := AppConfig{Services: "http,reaper"}
	if !cfg.IsHTTPServerEnabled() || !cfg.IsReaperEnabled() {
		t.Fatalf("expected both services enabled")
	}

	cfg = AppConfig{Services: "invalid-service"}
	if cfg.IsHTTPServerEnabled() {
		t.Errorf("IsHTTPServerEnabled() with invalid config: expected false, got true")
	}
	if cfg.IsReaperEnabled() {
		t.Errorf("IsReaperEnabled() with invalid config: expected false, got true")
	}
}

func TestBackendsConfig_DefaultsAndTrim(t *testing.T) {
	t.Setenv("HOLDER_API_BASE_URL", "  https://holder.example.com/ ")
	t.Setenv("ISSUER_API_BASE_URL", "   ")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backends.HolderBaseURL != "https://holder.example.com/" {
		t.Errorf("holder url not trimmed: %q", cfg.Backends.HolderBaseURL)
	}
	if cfg.Backends.IssuerBaseURL != DefaultIssuerAPIBaseURL {
		t.Errorf("blank issuer url should fall back to default, got %q", cfg.Backends.IssuerBaseURL)
	}
	if cfg.Backends.VerifierBaseURL != DefaultVerifierAPIBaseURL {
		t.Errorf("unset verifier url should fall back to default, got %q", cfg.Backends.VerifierBaseURL)
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{
		CookieName:     " ",
		SessionTTL:     time.Second,
		DefaultService: " Issuer ",
	}
	cfg.Sanitize()

	if cfg.CookieName != "session_id" {
		t.Errorf("expected default cookie name, got %q", cfg.CookieName)
	}
	if cfg.SessionTTL != time.Minute {
		t.Errorf("expected TTL clamped to a minute, got %v", cfg.SessionTTL)
	}
	if cfg.DefaultService != "issuer" {
		t.Errorf("expected normalized service, got %q", cfg.DefaultService)
	}

	cfg.DefaultService = "registry"
	cfg.Sanitize()
	if cfg.DefaultService != "holder" {
		t.Errorf("unknown service should fall back to holder, got %q", cfg.DefaultService)
	}
}

func TestHTTPConfig_SanitizeOrigins(t *testing.T) {
	t.Setenv("HTTP_CORS_ALLOWED_ORIGINS", "https://app.example.com, ,http://localhost:3000")

	var cfg HTTPConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	cfg.Sanitize()

	want := []string{"https://app.example.com", "http://localhost:3000"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSAllowedOrigins)
	}
}

func TestReaperConfig_Sanitize(t *testing.T) {
	cfg := ReaperConfig{Interval: time.Second, TokenMappingMaxAge: time.Minute, DocumentMaxAge: -time.Hour, BatchSize: 50000}
	cfg.Sanitize()

	if cfg.Interval != time.Minute {
		t.Errorf("interval not clamped: %v", cfg.Interval)
	}
	if cfg.TokenMappingMaxAge != time.Hour {
		t.Errorf("token mapping age not clamped: %v", cfg.TokenMappingMaxAge)
	}
	if cfg.DocumentMaxAge != 0 {
		t.Errorf("negative document age should disable pruning, got %v", cfg.DocumentMaxAge)
	}
	if cfg.BatchSize != 10000 {
		t.Errorf("batch size not clamped: %d", cfg.BatchSize)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
		Prefix:        ".cryptlocker.",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "cryptlocker" {
		t.Fatalf("expected prefix dots trimmed, got %q", cfg.Prefix)
	}
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Fatalf("expected NODE_ENV=development to enable dev mode")
	}
}
