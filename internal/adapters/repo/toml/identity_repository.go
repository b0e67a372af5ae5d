package toml

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
	"github.com/spf13/viper"
)

// IdentityRepository persists who is signed in. No file means guest.
type IdentityRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.IdentityRepository = (*IdentityRepository)(nil)

func NewIdentityRepository(cfg *viper.Viper) (*IdentityRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path, err := normalizePath(cfg.GetString(KeyIdentityPath))
	if err != nil {
		return nil, fmt.Errorf("resolve identity path: %w", err)
	}

	return &IdentityRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *IdentityRepository) Get(ctx context.Context) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file identityFileSchema
	found, err := readTOMLFile(r.path, "identity", &file)
	if err != nil {
		return domain.Identity{}, err
	}
	if !found {
		return domain.GuestIdentity(), nil
	}
	if err := file.validateVersion(); err != nil {
		return domain.Identity{}, err
	}

	id := file.Identity
	if id.Guest || id.UserID == "" {
		return domain.GuestIdentity(), nil
	}

	return domain.Identity{
		UserID:    id.UserID,
		Email:     id.Email,
		SecretRef: id.SecretRef,
		MergedAt:  parseTime(id.MergedAt),
	}, nil
}

func (r *IdentityRepository) Save(ctx context.Context, identity domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := identityFileSchema{Identity: identitySchema{
		Guest:     !identity.Authenticated(),
		UserID:    identity.UserID,
		Email:     identity.Email,
		SecretRef: identity.SecretRef,
		MergedAt:  formatTime(identity.MergedAt),
	}}
	if file.Identity.Guest {
		file.Identity = identitySchema{Guest: true}
	}
	file.applyDefaults()

	return writeTOMLFile(r.path, "identity", file)
}
