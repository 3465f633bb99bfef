package ports

import (
	"context"

	"github.com/google/uuid"
)

// IdentityResolver maps a player display name to the stable identity that
// keys sessions and answer records. Display names can change; the identity
// never does.
type IdentityResolver interface {
	// Resolve returns the identity for a name, minting one on first sight.
	Resolve(ctx context.Context, playerName string) (uuid.UUID, error)

	// Lookup returns the identity for a name without minting. Returns
	// domain.ErrPlayerNotFound for names never seen.
	Lookup(ctx context.Context, playerName string) (uuid.UUID, error)
}
