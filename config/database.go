package config

import "time"

// DBConfig contains PostgreSQL configuration for the local cache database.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"cryptlocker"`
	Password string `env:"PASSWORD"                envDefault:"cryptlocker"`
	Name     string `env:"NAME"                    envDefault:"cryptlocker"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the session store.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig controls the local cache that mirrors backend data.
type CacheConfig struct {
	// Enabled turns on the Postgres-backed cache. When false, /api/db routes answer 503
	// and opportunistic syncs are skipped.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// SyncRetries is how many extra attempts an opportunistic sync gets.
	SyncRetries uint64 `env:"CACHE_SYNC_RETRIES" envDefault:"2"`

	// SyncBackoff is the constant delay between sync attempts.
	SyncBackoff time.Duration `env:"CACHE_SYNC_BACKOFF" envDefault:"200ms"`

	// MaxUploadBytes caps uploaded document size.
	MaxUploadBytes int64 `env:"CACHE_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.SyncRetries > 10 {
		c.SyncRetries = 10
	}
	if c.SyncBackoff < 0 {
		c.SyncBackoff = 0
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}
}
