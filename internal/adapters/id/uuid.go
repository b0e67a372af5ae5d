package id

import (
	"github.com/bnema/studypomo/internal/ports"
	"github.com/google/uuid"
)

// UUIDGenerator issues random v4 session ids.
type UUIDGenerator struct{}

var _ ports.IDGenerator = UUIDGenerator{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
