package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	filestore "github.com/bnema/studypomo/internal/adapters/secrets/file"
	passstore "github.com/bnema/studypomo/internal/adapters/secrets/pass"
	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

// Store tries primary first and falls back on any non-context error.
// Deletes go to both backends so a signed-out token cannot resurface.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   *slog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, logger *slog.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{primary: primary, fallback: fallback, logger: logger}, nil
}

func NewPassFirstWithFileFallback(fileRoot string, logger *slog.Logger) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot), logger)
}

// Locate names the backend that currently answers for key, primary first.
func (s *Store) Locate(ctx context.Context, key string) (string, error) {
	_, err := s.primary.Get(ctx, key)
	if err == nil {
		return backendName(s.primary, "primary"), nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	if _, fallbackErr := s.fallback.Get(ctx, key); fallbackErr != nil {
		if errors.Is(fallbackErr, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("locate secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("locate secret %q: %w", key, errors.Join(err, fallbackErr))
	}
	return backendName(s.fallback, "fallback"), nil
}

func backendName(store ports.SecretStore, fallback string) string {
	if named, ok := store.(interface{ Name() string }); ok {
		return named.Name()
	}
	return fallback
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}
	s.logger.Debug("primary secret backend put failed", slog.String("key", key), slog.Any("error", err))

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
	}

	return fallbackValue, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	case fallbackErr == nil:
		// The fallback holds the only copy when the primary is unavailable.
		s.logger.Debug("primary secret backend delete failed", slog.String("key", key), slog.Any("error", err))
		return nil
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
