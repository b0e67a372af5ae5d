package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

// AuthService manages the signed-in identity and its stored token.
type AuthService struct {
	identities ports.IdentityRepository
	secrets    ports.SecretStore
}

func NewAuthService(identities ports.IdentityRepository, secrets ports.SecretStore) *AuthService {
	return &AuthService{identities: identities, secrets: secrets}
}

func (s *AuthService) Current(ctx context.Context) (domain.Identity, error) {
	identity, err := s.identities.Get(ctx)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("read identity: %w", err)
	}
	return identity, nil
}

// SignIn stores the token secret and switches to identity. Signing in
// again as the same user keeps the merge mark; any other transition
// schedules a fresh merge.
func (s *AuthService) SignIn(ctx context.Context, identity domain.Identity, tokenSecret string) error {
	if identity.UserID == "" {
		return errors.New("identity has no user id")
	}
	identity.Guest = false
	if identity.SecretRef == "" {
		identity.SecretRef = domain.TokenSecretRef(identity.UserID)
	}

	previous, err := s.Current(ctx)
	if err != nil {
		return err
	}

	if err := s.secrets.Put(ctx, identity.SecretRef, tokenSecret); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	identity.MergedAt = time.Time{}
	if previous.Authenticated() && previous.UserID == identity.UserID {
		identity.MergedAt = previous.MergedAt
	}

	if err := s.identities.Save(ctx, identity); err != nil {
		if rollbackErr := s.secrets.Delete(ctx, identity.SecretRef); rollbackErr != nil {
			return fmt.Errorf("save identity and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save identity: %w", err)
	}

	if previous.Authenticated() && previous.SecretRef != "" && previous.SecretRef != identity.SecretRef {
		if err := s.secrets.Delete(ctx, previous.SecretRef); err != nil {
			return fmt.Errorf("delete previous token: %w", err)
		}
	}

	return nil
}

// SignOut returns to guest mode and deletes the stored token. Queued
// writes stay so a later sign-in can deliver them.
func (s *AuthService) SignOut(ctx context.Context) (domain.Identity, error) {
	previous, err := s.Current(ctx)
	if err != nil {
		return domain.Identity{}, err
	}

	if err := s.identities.Save(ctx, domain.GuestIdentity()); err != nil {
		return domain.Identity{}, fmt.Errorf("save identity: %w", err)
	}

	if previous.SecretRef != "" {
		if err := s.secrets.Delete(ctx, previous.SecretRef); err != nil {
			return previous, fmt.Errorf("delete token: %w", err)
		}
	}

	return previous, nil
}

func (s *AuthService) Token(ctx context.Context) (string, error) {
	identity, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if !identity.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}

	secret, err := s.secrets.Get(ctx, identity.SecretRef)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return secret, nil
}

// SaveToken replaces the stored token of the current user, for refreshes.
func (s *AuthService) SaveToken(ctx context.Context, tokenSecret string) error {
	identity, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if !identity.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	if err := s.secrets.Put(ctx, identity.SecretRef, tokenSecret); err != nil {
		return fmt.Errorf("store refreshed token: %w", err)
	}
	return nil
}
