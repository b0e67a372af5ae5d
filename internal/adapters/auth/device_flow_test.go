package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceFlowReturnsGrantAfterPending(t *testing.T) {
	t.Parallel()

	issuer, server := newFakeIssuer(t)
	issuer.pendingPoll = 1
	provider := testProvider(server)

	code, err := provider.StartDevice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://auth.example.com/activate", code.VerificationURL)
	assert.Equal(t, "ABCD-EFGH", code.UserCode)
	assert.False(t, code.Expiry.IsZero())
	assert.Equal(t, "studypomo-sync", issuer.lastForm().Get("audience"))

	grant, err := provider.WaitDevice(context.Background(), code, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "device-access", grant.Token.AccessToken)
	assert.Equal(t, "refresh-1", grant.Token.RefreshToken)
	assert.Equal(t, Claims{Subject: "user-42", Email: "ada@example.com"}, grant.Claims)
	assert.Equal(t, int32(2), issuer.polls.Load())

	identity := grant.Identity()
	assert.Equal(t, "user-42", identity.UserID)
	assert.Equal(t, "studypomo/user-42/oauth_token", identity.SecretRef)
	assert.True(t, identity.Authenticated())
}

func TestDeviceFlowTimesOutWhileStillPending(t *testing.T) {
	t.Parallel()

	issuer, server := newFakeIssuer(t)
	issuer.pendingPoll = 1000
	provider := testProvider(server)

	code, err := provider.StartDevice(context.Background())
	require.NoError(t, err)

	_, err = provider.WaitDevice(context.Background(), code, 1500*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeviceFlowTimeout))
}

func TestWaitDeviceRequiresIssuedCode(t *testing.T) {
	t.Parallel()

	_, err := Provider{}.WaitDevice(context.Background(), DeviceCode{UserCode: "X"}, time.Second)
	assert.ErrorContains(t, err, "not issued by StartDevice")
}

func TestStartDeviceValidatesProvider(t *testing.T) {
	t.Parallel()

	_, err := Provider{Issuer: "https://a.example"}.StartDevice(context.Background())
	assert.ErrorContains(t, err, "client id is required")
}
