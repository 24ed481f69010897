package httpx

import (
	"context"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// authStateKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type authStateKey struct{}

// SetAuthStateInContext returns a child context that carries the resolved auth state.
func SetAuthStateInContext(ctx context.Context, state service.AuthState) context.Context {
	return context.WithValue(ctx, authStateKey{}, state)
}

// GetAuthStateFromContext returns the auth state resolved by the session middleware
// and a boolean indicating presence.
func GetAuthStateFromContext(ctx context.Context) (service.AuthState, bool) {
	state, ok := ctx.Value(authStateKey{}).(service.AuthState)
	return state, ok
}

// IsAnonymous reports whether the request carries no backend token.
func IsAnonymous(ctx context.Context) bool {
	state, ok := GetAuthStateFromContext(ctx)
	return !ok || !state.Authenticated()
}
