package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserLoginExchangesCodeWithPKCE(t *testing.T) {
	t.Parallel()

	issuer, server := newFakeIssuer(t)
	provider := testProvider(server)

	var shown string
	grant, err := provider.BrowserLogin(context.Background(), "127.0.0.1:0", 5*time.Second, func(authURL string) error {
		shown = authURL
		go func() {
			resp, err := server.Client().Get(authURL)
			if err == nil {
				_ = resp.Body.Close()
			}
		}()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "browser-access", grant.Token.AccessToken)
	assert.Equal(t, "user-42", grant.Claims.Subject)

	parsed, err := url.Parse(shown)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.NotEmpty(t, query.Get("code_challenge"))
	assert.Equal(t, "studypomo-sync", query.Get("audience"))
	assert.Equal(t, "pomo-cli", query.Get("client_id"))
	assert.NotEmpty(t, issuer.lastForm().Get("code_verifier"))
}

func TestBrowserLoginPropagatesShowError(t *testing.T) {
	t.Parallel()

	_, server := newFakeIssuer(t)

	_, err := testProvider(server).BrowserLogin(context.Background(), "127.0.0.1:0", time.Second, func(string) error {
		return errors.New("no browser")
	})
	assert.ErrorContains(t, err, "no browser")
}

func TestCallbackServerReturnsCodeOnSuccess(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state")
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	resp, err := http.Get(server.RedirectURI() + "?code=auth-code&state=expected-state")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Signed in to studypomo")

	code, err := server.WaitForCode(context.Background(), 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "auth-code", code)
}

func TestCallbackServerReturnsErrorOnStateMismatch(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state")
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	resp, err := http.Get(server.RedirectURI() + "?code=auth-code&state=wrong-state")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err = server.WaitForCode(context.Background(), 2*time.Second)
	require.ErrorIs(t, err, ErrStateMismatch)
}

func TestCallbackServerReportsProviderError(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "s")
	require.NoError(t, err)
	defer func() { _ = server.Close() }()

	resp, err := http.Get(server.RedirectURI() + "?state=s&error=access_denied&error_description=nope")
	require.NoError(t, err)
	_ = resp.Body.Close()

	_, err = server.WaitForCode(context.Background(), 2*time.Second)
	assert.EqualError(t, err, "access_denied: nope")
}

func TestCallbackServerTimesOutWaitingForCallback(t *testing.T) {
	t.Parallel()

	server, err := StartCallbackServer("127.0.0.1:0", "expected-state")
	require.NoError(t, err)

	_, err = server.WaitForCode(context.Background(), 50*time.Millisecond)
	require.ErrorIs(t, err, ErrCallbackTimeout)
}

func TestStartCallbackServerRequiresExpectedState(t *testing.T) {
	t.Parallel()

	_, err := StartCallbackServer("127.0.0.1:0", "")
	require.ErrorIs(t, err, ErrMissingState)
}
