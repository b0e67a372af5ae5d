package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var defaultScopes = []string{"openid", "email", "offline_access"}

// Provider describes the identity provider sync accounts sign in with.
type Provider struct {
	Issuer         string
	ClientID       string
	Audience       string
	Scopes         []string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

func (p Provider) validate() error {
	if p.ClientID == "" {
		return errors.New("client id is required")
	}
	if p.Issuer == "" {
		return errors.New("issuer is required")
	}

	parsed, err := url.Parse(p.Issuer)
	if err != nil {
		return fmt.Errorf("parse issuer: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("issuer must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("issuer host is required")
	}

	return nil
}

// Config returns the oauth2 configuration for the provider endpoints.
func (p Provider) Config(redirectURL string) *oauth2.Config {
	issuer := strings.TrimRight(p.Issuer, "/")
	scopes := p.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	return &oauth2.Config{
		ClientID:    p.ClientID,
		RedirectURL: redirectURL,
		Scopes:      scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:       issuer + "/oauth/authorize",
			DeviceAuthURL: issuer + "/oauth/device/code",
			TokenURL:      issuer + "/oauth/token",
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

func (p Provider) authOptions() []oauth2.AuthCodeOption {
	if p.Audience == "" {
		return nil
	}
	return []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("audience", p.Audience)}
}

// context routes oauth2 traffic through the provider's HTTP client.
func (p Provider) context(ctx context.Context) context.Context {
	client := p.HTTPClient
	if client == nil {
		timeout := p.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}
