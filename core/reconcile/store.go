package reconcile

import (
	"context"
	"errors"
)

// ErrDuplicateRegistryNumber is returned by PlayerStore.Save when another
// player already carries the registry number.
var ErrDuplicateRegistryNumber = errors.New("registry number already assigned to another player")

// PlayerStore is the player registry the engine reads and writes.
// Names passed in are already normalized.
type PlayerStore interface {
	// FindByRegistryNumber returns nil, nil when no player has the number.
	FindByRegistryNumber(ctx context.Context, number string) (*Player, error)
	// FindByExactName returns every player whose full name equals name.
	FindByExactName(ctx context.Context, name string) ([]*Player, error)
	// FindByNameOrAliasSubstring returns every player whose full name or any
	// alias contains text, case-insensitively. Hits may be false positives.
	FindByNameOrAliasSubstring(ctx context.Context, text string) ([]*Player, error)
	// Save inserts (ID 0) or updates the player and returns the stored value.
	Save(ctx context.Context, p *Player) (*Player, error)
}
