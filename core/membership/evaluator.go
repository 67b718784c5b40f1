package membership

import (
	"context"
	"fmt"
	"time"

	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"
)

// Interval is a closed range of calendar dates during which a player is a member.
type Interval struct {
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

// Covers reports whether date falls within the interval, both ends included.
func (i Interval) Covers(date time.Time) bool {
	d := utils.DateOf(date)
	return !d.Before(utils.DateOf(i.ValidFrom)) && !d.After(utils.DateOf(i.ValidUntil))
}

// IntervalStore looks up membership intervals.
type IntervalStore interface {
	// IntervalCovering returns an interval of the player covering date, or nil.
	IntervalCovering(ctx context.Context, playerID uint, date time.Time) (*Interval, error)
}

// Evaluator computes membership states.
type Evaluator struct {
	store IntervalStore
	// Now supplies "today" when no date is given.
	Now func() time.Time
}

// NewEvaluator creates an evaluator using the wall clock.
func NewEvaluator(store IntervalStore) *Evaluator {
	return &Evaluator{store: store, Now: time.Now}
}

// State returns the membership state of player on asOf. A nil player is not
// known; a zero asOf means today.
func (e *Evaluator) State(ctx context.Context, player *reconcile.Player, asOf time.Time) (State, error) {
	if player == nil {
		return PlayerNotKnown, nil
	}
	if asOf.IsZero() {
		asOf = e.Now()
	}

	interval, err := e.store.IntervalCovering(ctx, player.ID, utils.DateOf(asOf))
	if err != nil {
		return PlayerNotKnown, fmt.Errorf("failed to read memberships of player %d: %w", player.ID, err)
	}
	if interval != nil {
		return ActiveMember, nil
	}
	return PreviousMember, nil
}

// Coverage derives the membership interval bought on transactionDate: until
// the end of that year, or the end of the next one from October on.
func Coverage(transactionDate time.Time) Interval {
	from := utils.DateOf(transactionDate)
	year := from.Year()
	if from.Month() >= time.October {
		year++
	}
	return Interval{
		ValidFrom:  from,
		ValidUntil: time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}
