package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/cryptlocker/cryptlocker-ui-api/config"
	redisadapter "github.com/cryptlocker/cryptlocker-ui-api/internal/adapters/redis"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/domain/backend"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/ports"
	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	API         ports.AuthAPI
	RedisClient redis.UniversalClient
	// Sync is optional; nil disables login mirroring into the local cache.
	Sync   service.UserSyncer
	Logger *slog.Logger
}

// BuildAuthService wires the auth flows to a Redis-backed session store.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth service requires a redis client")
	}
	if cfg.API == nil {
		return nil, errors.New("auth service requires a backend client")
	}

	sessions := redisadapter.NewSessionStore(cfg.RedisClient, redisadapter.SessionStoreOptions{
		Prefix: cfg.Auth.KeyPrefix,
		Logger: cfg.Logger,
	})

	svc, err := service.NewAuthService(service.AuthServiceOptions{
		API:      cfg.API,
		Sessions: sessions,
		Settings: service.AuthSettings{
			SessionTTL:     cfg.Auth.SessionTTL,
			DefaultService: backend.ParseService(cfg.Auth.DefaultService),
			Logger:         cfg.Logger,
			Sync:           cfg.Sync,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create auth service: %w", err)
	}
	return svc, nil
}
