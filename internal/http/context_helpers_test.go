package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

func TestGetAuthStateFromContext(t *testing.T) {
	_, ok := GetAuthStateFromContext(context.Background())
	assert.False(t, ok)

	state := service.AuthState{SessionID: "abc", Token: "tok"}
	got, ok := GetAuthStateFromContext(SetAuthStateInContext(context.Background(), state))
	assert.True(t, ok)
	assert.Equal(t, state, got)
}

func TestIsAnonymous(t *testing.T) {
	assert.True(t, IsAnonymous(context.Background()))

	noToken := SetAuthStateInContext(context.Background(), service.AuthState{SessionID: "abc"})
	assert.True(t, IsAnonymous(noToken))

	authed := SetAuthStateInContext(context.Background(), service.AuthState{SessionID: "abc", Token: "tok"})
	assert.False(t, IsAnonymous(authed))
}
