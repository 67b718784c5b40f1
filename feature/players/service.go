package players

import (
	"context"
	"errors"

	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"

	"go.uber.org/zap"
)

var (
	// ErrPlayerNotFound is returned when a lookup finds nothing.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrInvalidRegistryNumber is returned for malformed registry numbers.
	ErrInvalidRegistryNumber = errors.New("invalid registry number")
	// ErrQueryTooShort is returned for searches shorter than MinQueryLength.
	ErrQueryTooShort = errors.New("search query too short")
)

// MinQueryLength is the shortest accepted search text.
const MinQueryLength = 2

// Service exposes read-only registry lookups.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new players service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Search returns players whose name or an alias contains q.
// Substring hits are returned as is; callers wanting whole-name matches use
// reconcile.IsKnownAs.
func (s *Service) Search(ctx context.Context, q string) ([]*reconcile.Player, error) {
	q = utils.NormalizeName(q)
	if len([]rune(q)) < MinQueryLength {
		return nil, ErrQueryTooShort
	}
	return s.store.FindByNameOrAliasSubstring(ctx, q)
}

// ByRegistryNumber returns the player carrying number.
func (s *Service) ByRegistryNumber(ctx context.Context, number string) (*reconcile.Player, error) {
	canonical, ok := utils.ParseRegistryNumber(number)
	if !ok {
		return nil, ErrInvalidRegistryNumber
	}
	p, err := s.store.FindByRegistryNumber(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// ByID returns the player with id.
func (s *Service) ByID(ctx context.Context, id uint) (*reconcile.Player, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}
