package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type memoryTokens struct {
	secret string
	saves  int
}

func (m *memoryTokens) Token(context.Context) (string, error) {
	if m.secret == "" {
		return "", domain.ErrNotAuthenticated
	}
	return m.secret, nil
}

func (m *memoryTokens) SaveToken(_ context.Context, secret string) error {
	m.secret = secret
	m.saves++
	return nil
}

func encoded(t *testing.T, token *oauth2.Token) string {
	t.Helper()

	secret, err := EncodeToken(token)
	require.NoError(t, err)
	return secret
}

func TestStoredSourceRefreshesAndWritesBack(t *testing.T) {
	t.Parallel()

	issuer, server := newFakeIssuer(t)
	store := &memoryTokens{secret: encoded(t, &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	})}
	source := testProvider(server).StoredSource(context.Background(), store)

	for range 2 {
		token, err := source.Token()
		require.NoError(t, err)
		assert.Equal(t, "refreshed-1", token.AccessToken)
	}

	assert.Equal(t, int32(1), issuer.refreshes.Load())
	assert.Equal(t, 1, store.saves)
	saved, err := DecodeToken(store.secret)
	require.NoError(t, err)
	assert.Equal(t, "refreshed-1", saved.AccessToken)
}

func TestStoredSourceForgetReloads(t *testing.T) {
	t.Parallel()

	_, server := newFakeIssuer(t)
	store := &memoryTokens{secret: encoded(t, &oauth2.Token{AccessToken: "first", Expiry: time.Now().Add(time.Hour)})}
	source := testProvider(server).StoredSource(context.Background(), store)

	token, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "first", token.AccessToken)

	store.secret = encoded(t, &oauth2.Token{AccessToken: "second", Expiry: time.Now().Add(time.Hour)})
	token, err = source.Token()
	require.NoError(t, err)
	assert.Equal(t, "first", token.AccessToken)

	source.Forget()
	token, err = source.Token()
	require.NoError(t, err)
	assert.Equal(t, "second", token.AccessToken)

	store.secret = ""
	source.Forget()
	_, err = source.Token()
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
