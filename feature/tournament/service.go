package tournament

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bcds-membership/core/membership"
	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"
	"bcds-membership/feature/pdga"

	"go.uber.org/zap"
)

// ErrTournamentNotFound is returned when the registry does not know the tournament.
var ErrTournamentNotFound = errors.New("tournament not found")

// Row notes.
const (
	NoteAmbiguousName = "ambiguous name"
	NoteConflict      = "registry number conflict"
	NoteNewPlayer     = "new player"
)

// Registry is the part of the tournament registry the report reads.
type Registry interface {
	Tournament(ctx context.Context, id string) (*pdga.Tournament, error)
	TournamentPlayers(ctx context.Context, id string) ([]reconcile.ExternalPlayerRef, error)
}

// Resolver maps roster entries to players.
type Resolver interface {
	ResolveFromExternalRef(ctx context.Context, ref reconcile.ExternalPlayerRef) (reconcile.Resolution, error)
}

// StateEvaluator answers the membership state of a player on a date.
type StateEvaluator interface {
	State(ctx context.Context, player *reconcile.Player, asOf time.Time) (membership.State, error)
}

// Row is one roster entry of a report.
type Row struct {
	Name           string           `json:"name"`
	RegistryNumber string           `json:"pdga_number,omitempty"`
	PlayerID       uint             `json:"player_id,omitempty"`
	State          membership.State `json:"state"`
	Note           string           `json:"note,omitempty"`
}

// Report lists the membership state of every player of a tournament on its
// start date.
type Report struct {
	Tournament pdga.Tournament `json:"tournament"`
	Date       string          `json:"date"`
	Rows       []Row           `json:"rows"`
	Totals     map[string]int  `json:"totals"`
}

// Service builds tournament membership reports.
type Service struct {
	registry  Registry
	resolver  Resolver
	evaluator StateEvaluator
	logger    *zap.Logger
}

// NewService creates a tournament service.
func NewService(registry Registry, resolver Resolver, evaluator StateEvaluator, logger *zap.Logger) *Service {
	return &Service{registry: registry, resolver: resolver, evaluator: evaluator, logger: logger}
}

// Tournament returns the tournament or ErrTournamentNotFound.
func (s *Service) Tournament(ctx context.Context, id string) (*pdga.Tournament, error) {
	t, err := s.registry.Tournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tournament %s: %w", id, err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
	}
	return t, nil
}

// Report resolves the roster of a tournament and evaluates each player as of
// the start date. Players the registry lists but nobody can be matched to are
// reported as not known.
func (s *Service) Report(ctx context.Context, id string) (*Report, error) {
	t, err := s.Tournament(ctx, id)
	if err != nil {
		return nil, err
	}

	asOf, err := utils.ParseDate(t.StartDate)
	if err != nil {
		return nil, fmt.Errorf("tournament %s has an invalid start date %q: %w", id, t.StartDate, err)
	}

	roster, err := s.registry.TournamentPlayers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster of tournament %s: %w", id, err)
	}

	l := s.logger.With(zap.String("tournament_id", id), zap.String("date", utils.FormatDate(asOf)))
	l.Info("Building tournament report", zap.Int("players", len(roster)))

	report := &Report{
		Tournament: *t,
		Date:       utils.FormatDate(asOf),
		Rows:       make([]Row, 0, len(roster)),
		Totals:     make(map[string]int),
	}
	for _, ref := range roster {
		row, err := s.row(ctx, l, ref, asOf)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, row)
		report.Totals[row.State.String()]++
	}
	return report, nil
}

func (s *Service) row(ctx context.Context, l *zap.Logger, ref reconcile.ExternalPlayerRef, asOf time.Time) (Row, error) {
	row := Row{Name: ref.Name, RegistryNumber: ref.RegistryNumber, State: membership.PlayerNotKnown}

	res, err := s.resolver.ResolveFromExternalRef(ctx, ref)
	if errors.Is(err, reconcile.ErrIdentityConflict) {
		l.Warn("FIX? ==> roster entry conflicts with the registry", zap.String("name", ref.Name), zap.Error(err))
		row.Note = NoteConflict
		return row, nil
	}
	if err != nil {
		return row, fmt.Errorf("failed to resolve %q: %w", ref.Name, err)
	}

	switch res.Outcome {
	case reconcile.OutcomeAmbiguous:
		row.Note = NoteAmbiguousName
		return row, nil
	case reconcile.OutcomeCreated:
		row.Note = NoteNewPlayer
	}
	if !res.Resolved() {
		return row, nil
	}

	row.PlayerID = res.Player.ID
	if row.RegistryNumber == "" {
		row.RegistryNumber = res.Player.RegistryNumber
	}
	state, err := s.evaluator.State(ctx, res.Player, asOf)
	if err != nil {
		return row, fmt.Errorf("failed to evaluate %q: %w", ref.Name, err)
	}
	row.State = state
	return row, nil
}
