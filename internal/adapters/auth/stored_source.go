package auth

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore holds the encoded token of the signed-in user.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, secret string) error
}

// StoredSource is a token source backed by a TokenStore. The token is read
// on first use and after Forget; refreshed tokens are written back.
type StoredSource struct {
	ctx      context.Context
	provider Provider
	store    TokenStore

	mu     sync.Mutex
	source oauth2.TokenSource
}

func (p Provider) StoredSource(ctx context.Context, store TokenStore) *StoredSource {
	return &StoredSource{ctx: ctx, provider: p, store: store}
}

// StoredClient returns an HTTP client authorized by a StoredSource.
func (p Provider) StoredClient(ctx context.Context, store TokenStore) (*http.Client, *StoredSource) {
	source := p.StoredSource(ctx, store)
	return oauth2.NewClient(p.context(ctx), source), source
}

func (s *StoredSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.source == nil {
		secret, err := s.store.Token(s.ctx)
		if err != nil {
			return nil, err
		}
		token, err := DecodeToken(secret)
		if err != nil {
			return nil, err
		}
		s.source = oauth2.ReuseTokenSource(token, &savingSource{
			base: s.provider.Config("").TokenSource(s.provider.context(s.ctx), token),
			last: token.AccessToken,
			save: func(refreshed *oauth2.Token) error {
				encoded, err := EncodeToken(refreshed)
				if err != nil {
					return err
				}
				return s.store.SaveToken(s.ctx, encoded)
			},
		})
	}

	return s.source.Token()
}

// Forget drops the cached token, for sign-in and sign-out.
func (s *StoredSource) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = nil
}
