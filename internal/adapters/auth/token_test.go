package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestEncodeDecodeTokenKeepsExpiry(t *testing.T) {
	t.Parallel()

	expiry := time.Unix(1_900_000_000, 0)
	secret, err := EncodeToken(&oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", Expiry: expiry})
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"a","refresh_token":"r","token_type":"Bearer","expires_at":1900000000}`, secret)

	token, err := DecodeToken(secret)
	require.NoError(t, err)
	assert.Equal(t, "r", token.RefreshToken)
	assert.True(t, token.Expiry.Equal(expiry))

	_, err = DecodeToken(`{"refresh_token":"r"}`)
	assert.ErrorContains(t, err, "missing access_token")

	_, err = EncodeToken(nil)
	assert.Error(t, err)
}

func TestParseIDToken(t *testing.T) {
	t.Parallel()

	claims, err := ParseIDToken(testIDToken(t, map[string]string{"sub": "u1", "email": "a@b.c"}))
	require.NoError(t, err)
	assert.Equal(t, Claims{Subject: "u1", Email: "a@b.c"}, claims)

	_, err = ParseIDToken("not-a-jwt")
	assert.ErrorContains(t, err, "not a JWT")

	_, err = ParseIDToken(testIDToken(t, map[string]string{"email": "a@b.c"}))
	assert.ErrorContains(t, err, "missing sub")
}
