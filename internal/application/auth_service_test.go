package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceSignInStoresTokenAndSchedulesMerge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Put(mockAnyContext(), "studypomo/u1/oauth_token", "token-1").Return(nil).Once()
	svc := NewAuthService(env.identities, secrets)

	require.NoError(t, svc.SignIn(ctx, domain.Identity{UserID: "u1", Email: "u1@example.com"}, "token-1"))

	identity, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.True(t, identity.Authenticated())
	assert.True(t, identity.NeedsMerge())
	assert.Equal(t, "u1@example.com", identity.Label())
}

func TestAuthServiceSignInAgainKeepsMergeMark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	merged := env.signIn(t, "u1")
	merged.MergedAt = testNow.Add(-time.Hour)
	require.NoError(t, env.identities.Save(ctx, merged))

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Put(mockAnyContext(), merged.SecretRef, "token-2").Return(nil).Once()
	svc := NewAuthService(env.identities, secrets)

	require.NoError(t, svc.SignIn(ctx, domain.Identity{UserID: "u1"}, "token-2"))

	identity, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, identity.NeedsMerge())
}

func TestAuthServiceSwitchingUserDeletesPreviousToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	previous := env.signIn(t, "u1")
	previous.MergedAt = testNow
	require.NoError(t, env.identities.Save(ctx, previous))

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Put(mockAnyContext(), "studypomo/u2/oauth_token", "token-2").Return(nil).Once()
	secrets.EXPECT().Delete(mockAnyContext(), "studypomo/u1/oauth_token").Return(nil).Once()
	svc := NewAuthService(env.identities, secrets)

	require.NoError(t, svc.SignIn(ctx, domain.Identity{UserID: "u2"}, "token-2"))

	identity, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", identity.UserID)
	assert.True(t, identity.NeedsMerge())
}

func TestAuthServiceSignInFailsWhenTokenCannotBeStored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Put(mockAnyContext(), "studypomo/u1/oauth_token", "token").Return(errors.New("locked")).Once()
	svc := NewAuthService(env.identities, secrets)

	err := svc.SignIn(ctx, domain.Identity{UserID: "u1"}, "token")
	assert.ErrorContains(t, err, "store token: locked")

	identity, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.False(t, identity.Authenticated())

	assert.Error(t, svc.SignIn(ctx, domain.Identity{}, "token"))
}

func TestAuthServiceSignOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn(t, "u1")

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Delete(mockAnyContext(), "studypomo/u1/oauth_token").Return(nil).Once()
	svc := NewAuthService(env.identities, secrets)

	previous, err := svc.SignOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", previous.UserID)

	_, err = svc.Token(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.ErrorIs(t, svc.SaveToken(ctx, "x"), domain.ErrNotAuthenticated)
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn(t, "u1")

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Put(mockAnyContext(), "studypomo/u1/oauth_token", "refreshed").Return(nil).Once()
	secrets.EXPECT().Get(mockAnyContext(), "studypomo/u1/oauth_token").Return("refreshed", nil).Once()
	svc := NewAuthService(env.identities, secrets)

	require.NoError(t, svc.SaveToken(ctx, "refreshed"))
	token, err := svc.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refreshed", token)
}
