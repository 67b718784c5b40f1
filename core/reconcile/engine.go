package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bcds-membership/core/utils"

	"go.uber.org/zap"
)

// Engine decides which stored player an incoming record or roster ref refers to.
// It holds no state between calls; records must be resolved one at a time, in
// source order, so later records see players created by earlier ones.
type Engine struct {
	store  PlayerStore
	logger *zap.Logger
}

// NewEngine creates an engine on top of a player store.
func NewEngine(store PlayerStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// registryNumber returns the canonical form of raw, or "" when raw is not a
// valid registry number.
func (e *Engine) registryNumber(raw string) string {
	number, ok := utils.ParseRegistryNumber(raw)
	if !ok && strings.TrimSpace(raw) != "" {
		e.logger.Debug("Ignoring invalid registry number", zap.String("registry_number", raw))
	}
	return number
}

// ResolveFromImport resolves a sheet record to an existing or new player,
// updating the player with whatever the record adds. It returns a
// *ConflictError (matching ErrIdentityConflict) when a hard signal contradicts
// the registry; nothing is saved in that case.
func (e *Engine) ResolveFromImport(ctx context.Context, rec ImportRecord) (Resolution, error) {
	rec.FullName = utils.NormalizeName(rec.FullName)
	rec.RegistryNumber = e.registryNumber(rec.RegistryNumber)
	if rec.FullName == "" {
		return Resolution{}, ErrMissingName
	}
	if !rec.BirthDate.IsZero() {
		rec.BirthDate = utils.DateOf(rec.BirthDate)
	}

	l := e.logger.With(zap.String("name", rec.FullName), zap.String("registry_number", rec.RegistryNumber))

	if rec.RegistryNumber != "" {
		stored, err := e.store.FindByRegistryNumber(ctx, rec.RegistryNumber)
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to look up registry number %s: %w", rec.RegistryNumber, err)
		}
		if stored != nil {
			return e.mergeByRegistryNumber(ctx, l, stored, rec)
		}
	}

	candidates, err := e.store.FindByExactName(ctx, rec.FullName)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to look up name %q: %w", rec.FullName, err)
	}

	best, score := bestCandidate(candidates, rec)
	if best == nil {
		if len(candidates) > 0 {
			l.Info("FIX? ==> no acceptable candidate among same-name players, creating a new one",
				zap.Int("candidates", len(candidates)))
		}
		return e.create(ctx, l, &Player{
			FullName:       rec.FullName,
			RegistryNumber: rec.RegistryNumber,
			BirthDate:      rec.BirthDate,
			Email:          rec.Email,
			Address:        rec.Address,
			City:           rec.City,
		})
	}

	p := best.Clone()
	changed := false
	if p.RegistryNumber == "" && rec.RegistryNumber != "" {
		p.RegistryNumber = rec.RegistryNumber
		changed = true
		l.Info("Attached registry number to player", zap.Uint("player_id", p.ID), zap.Int("score", score))
	}
	if !p.HasBirthDate() && !rec.BirthDate.IsZero() {
		p.BirthDate = rec.BirthDate
		changed = true
	}
	if backfillContact(p, rec) {
		changed = true
	}

	return e.saveIfChanged(ctx, p, rec.FullName, rec.RegistryNumber, changed)
}

func (e *Engine) mergeByRegistryNumber(ctx context.Context, l *zap.Logger, stored *Player, rec ImportRecord) (Resolution, error) {
	if stored.HasBirthDate() && !rec.BirthDate.IsZero() && !utils.SameDay(stored.BirthDate, rec.BirthDate) {
		conflict := &ConflictError{
			Name:           rec.FullName,
			RegistryNumber: rec.RegistryNumber,
			Field:          "birth_date",
			Stored:         utils.FormatDate(stored.BirthDate),
			Incoming:       utils.FormatDate(rec.BirthDate),
		}
		l.Warn("FIX ==> birth date contradicts the registry", zap.Error(conflict))
		return Resolution{}, conflict
	}

	p := stored.Clone()
	changed := false
	if TrackAlias(p, rec.FullName) {
		changed = true
		l.Info("Tracked new alias", zap.Uint("player_id", p.ID), zap.String("full_name", p.FullName))
	}
	if !p.HasBirthDate() && !rec.BirthDate.IsZero() {
		p.BirthDate = rec.BirthDate
		changed = true
	}
	if backfillContact(p, rec) {
		changed = true
	}

	return e.saveIfChanged(ctx, p, rec.FullName, rec.RegistryNumber, changed)
}

// ResolveFromExternalRef resolves a roster entry. It never edits contact
// fields, and creates a player only when the ref carries a registry number
// nobody has yet and no stored player is known by the name.
func (e *Engine) ResolveFromExternalRef(ctx context.Context, ref ExternalPlayerRef) (Resolution, error) {
	name := utils.NormalizeName(ref.Name)
	number := e.registryNumber(ref.RegistryNumber)
	l := e.logger.With(zap.String("name", name), zap.String("registry_number", number))

	if number != "" {
		stored, err := e.store.FindByRegistryNumber(ctx, number)
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to look up registry number %s: %w", number, err)
		}
		if stored != nil {
			p := stored.Clone()
			changed := TrackAlias(p, name)
			if changed {
				l.Info("Tracked new alias from roster", zap.Uint("player_id", p.ID), zap.String("full_name", p.FullName))
			}
			return e.saveIfChanged(ctx, p, name, number, changed)
		}
	}

	if name == "" {
		return Resolution{Outcome: OutcomeUnknown}, nil
	}

	matches, err := e.knownAs(ctx, name, number)
	if err != nil {
		return Resolution{}, err
	}

	switch len(matches) {
	case 0:
		if number == "" {
			return Resolution{Outcome: OutcomeUnknown}, nil
		}
		return e.create(ctx, l, &Player{FullName: name, RegistryNumber: number})
	case 1:
		p := matches[0].Clone()
		changed := false
		if number != "" && p.RegistryNumber == "" {
			p.RegistryNumber = number
			changed = true
			l.Info("Attached registry number from roster", zap.Uint("player_id", p.ID))
		}
		return e.saveIfChanged(ctx, p, name, number, changed)
	default:
		l.Info("Roster name matches several players", zap.Int("matches", len(matches)))
		return Resolution{Outcome: OutcomeAmbiguous}, nil
	}
}

// knownAs runs the substring search and keeps the players truly known by
// name. With a registry number, players carrying a different one are dropped.
func (e *Engine) knownAs(ctx context.Context, name, number string) ([]*Player, error) {
	hits, err := e.store.FindByNameOrAliasSubstring(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search name %q: %w", name, err)
	}

	seen := make(map[uint]struct{}, len(hits))
	var matches []*Player
	for _, p := range hits {
		if !IsKnownAs(p, name) {
			continue
		}
		if number != "" && p.RegistryNumber != "" && p.RegistryNumber != number {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		matches = append(matches, p)
	}
	return matches, nil
}

func (e *Engine) create(ctx context.Context, l *zap.Logger, p *Player) (Resolution, error) {
	saved, err := e.save(ctx, p, p.FullName, p.RegistryNumber)
	if err != nil {
		return Resolution{}, err
	}
	l.Info("Created player", zap.Uint("player_id", saved.ID))
	return Resolution{Player: saved, Outcome: OutcomeCreated}, nil
}

func (e *Engine) saveIfChanged(ctx context.Context, p *Player, name, number string, changed bool) (Resolution, error) {
	if !changed {
		return Resolution{Player: p, Outcome: OutcomeMatched}, nil
	}
	saved, err := e.save(ctx, p, name, number)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Player: saved, Outcome: OutcomeMatched}, nil
}

func (e *Engine) save(ctx context.Context, p *Player, name, number string) (*Player, error) {
	saved, err := e.store.Save(ctx, p)
	if errors.Is(err, ErrDuplicateRegistryNumber) {
		conflict := &ConflictError{
			Name:           name,
			RegistryNumber: p.RegistryNumber,
			Field:          "registry_number",
			Stored:         "assigned to another player",
			Incoming:       number,
			Err:            err,
		}
		e.logger.Warn("FIX ==> registry number already belongs to another player", zap.Error(conflict))
		return nil, conflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save player %q: %w", p.FullName, err)
	}
	return saved, nil
}

// backfillContact copies contact fields the player lacks from the record.
func backfillContact(p *Player, rec ImportRecord) bool {
	changed := false
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
			changed = true
		}
	}
	fill(&p.Email, strings.TrimSpace(rec.Email))
	fill(&p.Address, strings.TrimSpace(rec.Address))
	fill(&p.City, strings.TrimSpace(rec.City))
	return changed
}
