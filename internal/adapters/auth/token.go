package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"golang.org/x/oauth2"
)

// Grant is the result of a completed sign-in.
type Grant struct {
	Token  *oauth2.Token
	Claims Claims
}

type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
}

func (g Grant) Identity() domain.Identity {
	return domain.Identity{
		UserID:    g.Claims.Subject,
		Email:     g.Claims.Email,
		SecretRef: domain.TokenSecretRef(g.Claims.Subject),
	}
}

func newGrant(token *oauth2.Token) (Grant, error) {
	if token == nil || token.AccessToken == "" {
		return Grant{}, errors.New("token response missing access token")
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		return Grant{}, errors.New("token response missing id_token")
	}

	claims, err := ParseIDToken(idToken)
	if err != nil {
		return Grant{}, err
	}

	return Grant{Token: token, Claims: claims}, nil
}

// ParseIDToken reads the subject and email claims. The signature is not
// checked; the token came straight from the token endpoint.
func ParseIDToken(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, errors.New("id_token is not a JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("decode id_token payload: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, fmt.Errorf("decode id_token claims: %w", err)
	}
	if claims.Subject == "" {
		return Claims{}, errors.New("id_token missing sub claim")
	}

	return claims, nil
}

type storedToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

func EncodeToken(token *oauth2.Token) (string, error) {
	if token == nil || token.AccessToken == "" {
		return "", errors.New("oauth token missing access_token")
	}

	stored := storedToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if !token.Expiry.IsZero() {
		stored.ExpiresAt = token.Expiry.Unix()
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encode oauth token: %w", err)
	}
	return string(payload), nil
}

func DecodeToken(secret string) (*oauth2.Token, error) {
	var stored storedToken
	if err := json.Unmarshal([]byte(secret), &stored); err != nil {
		return nil, fmt.Errorf("decode oauth token: %w", err)
	}
	if strings.TrimSpace(stored.AccessToken) == "" {
		return nil, errors.New("oauth token missing access_token")
	}

	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    stored.TokenType,
	}
	if stored.ExpiresAt > 0 {
		token.Expiry = time.Unix(stored.ExpiresAt, 0)
	}
	return token, nil
}

// savingSource persists every newly issued access token.
type savingSource struct {
	base oauth2.TokenSource
	save func(*oauth2.Token) error

	mu   sync.Mutex
	last string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		if err := s.save(token); err != nil {
			return nil, fmt.Errorf("save refreshed token: %w", err)
		}
		s.last = token.AccessToken
	}

	return token, nil
}
