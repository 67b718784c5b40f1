package players

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bcds-membership/core/reconcile"
	"bcds-membership/feature/players/models"

	"gorm.io/gorm"
)

// likeEscaper makes user text literal inside a LIKE pattern using '!' as escape.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Store is the gorm-backed player registry.
type Store struct {
	db *gorm.DB
}

// Ensure Store implements the engine port
var _ reconcile.PlayerStore = (*Store)(nil)

// NewStore creates a player store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByID returns the player with id, or nil when absent.
func (s *Store) FindByID(ctx context.Context, id uint) (*reconcile.Player, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Store) FindByRegistryNumber(ctx context.Context, number string) (*reconcile.Player, error) {
	if number == "" {
		return nil, nil
	}
	return s.first(ctx, "registry_number = ?", number)
}

func (s *Store) FindByExactName(ctx context.Context, name string) ([]*reconcile.Player, error) {
	var rows []models.Player
	if err := s.db.WithContext(ctx).Where("full_name = ?", name).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query players by name: %w", err)
	}
	return toNormalized(rows), nil
}

func (s *Store) FindByNameOrAliasSubstring(ctx context.Context, text string) ([]*reconcile.Player, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, nil
	}
	pattern := "%" + likeEscaper.Replace(text) + "%"

	var rows []models.Player
	err := s.db.WithContext(ctx).
		Where("LOWER(full_name) LIKE ? ESCAPE '!' OR LOWER(aliases) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	return toNormalized(rows), nil
}

func (s *Store) Save(ctx context.Context, p *reconcile.Player) (*reconcile.Player, error) {
	row := models.FromNormalized(p)

	tx := s.db.WithContext(ctx)
	var err error
	if row.ID == 0 {
		err = tx.Create(&row).Error
	} else {
		err = tx.Omit("created_at").Save(&row).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: %s", reconcile.ErrDuplicateRegistryNumber, p.RegistryNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}
	return row.ToNormalized(), nil
}

func (s *Store) first(ctx context.Context, query string, args ...any) (*reconcile.Player, error) {
	var row models.Player
	err := s.db.WithContext(ctx).Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query player: %w", err)
	}
	return row.ToNormalized(), nil
}

func toNormalized(rows []models.Player) []*reconcile.Player {
	out := make([]*reconcile.Player, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToNormalized())
	}
	return out
}
