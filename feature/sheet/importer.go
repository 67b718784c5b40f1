package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bcds-membership/core/cache"
	"bcds-membership/core/membership"
	"bcds-membership/core/reconcile"
	"bcds-membership/feature/memberships"
	"bcds-membership/feature/memberships/models"

	"go.uber.org/zap"
)

// ErrReloadThrottled is returned when the sheet was imported less than the
// reload latency ago.
var ErrReloadThrottled = errors.New("sheet reload requested within the reload latency")

// reloadKey is the cache key gating imports.
const reloadKey = "sheet:reload"

// PaymentStore records what the sheet rows paid for.
type PaymentStore interface {
	ConfirmationCodeExists(ctx context.Context, code string) (bool, error)
	RecordPayment(ctx context.Context, playerID uint, interval membership.Interval, payment models.Payment) error
}

// Importer loads the membership sheet into the registry.
type Importer struct {
	source     Source
	engine     *reconcile.Engine
	payments   PaymentStore
	cache      cache.Cache
	latency    time.Duration
	headerRows int
	logger     *zap.Logger

	// mu serializes runs; rows must be resolved in sheet order.
	mu sync.Mutex

	lastMu sync.Mutex
	last   *JobStats
}

// NewImporter creates an importer. A nil cache disables the reload latency.
func NewImporter(source Source, engine *reconcile.Engine, payments PaymentStore, c cache.Cache, latency time.Duration, cfg Config, logger *zap.Logger) *Importer {
	if c == nil {
		c = cache.Noop{}
	}
	return &Importer{
		source:     source,
		engine:     engine,
		payments:   payments,
		cache:      c,
		latency:    latency,
		headerRows: cfg.HeaderRows,
		logger:     logger,
	}
}

// Run imports the sheet. Unless force is set, it returns ErrReloadThrottled
// when another import started within the reload latency. A store failure
// aborts the job; rows imported before it stay imported. A failed job does
// not hold the reload gate, so the next request imports again.
func (i *Importer) Run(ctx context.Context, force bool) (*JobStats, error) {
	gated := false
	if i.latency > 0 {
		acquired, err := i.cache.Acquire(ctx, reloadKey, i.latency)
		if err != nil {
			i.logger.Warn("Reload gate unavailable, importing anyway", zap.Error(err))
		} else if !acquired && !force {
			i.logger.Info("Reload requested in latency period, no reload performed")
			return nil, ErrReloadThrottled
		}
		gated = err == nil && acquired
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	stats := NewJobStats("Reload the membership sheet")
	i.publish(stats)
	l := i.logger.With(zap.String("job_id", stats.ID))
	l.Info("Sheet import started", zap.Bool("force", force))

	err := i.run(ctx, stats, l)
	stats.Finish(err)

	if err != nil {
		l.Error("Sheet import failed", zap.Error(err), zap.Any("counters", stats.Snapshot().Counters))
		if gated {
			if rerr := i.cache.Release(context.WithoutCancel(ctx), reloadKey); rerr != nil {
				l.Warn("Could not release reload gate", zap.Error(rerr))
			}
		}
		return stats, err
	}
	l.Info("Sheet import finished", zap.Any("counters", stats.Snapshot().Counters), zap.String("duration", stats.Duration))
	return stats, nil
}

func (i *Importer) run(ctx context.Context, stats *JobStats, l *zap.Logger) error {
	stats.SetActivity("Reading, parsing and validating the membership sheet")
	rows, err := i.source.Rows(ctx)
	if err != nil {
		return err
	}
	entries := Parse(rows, i.headerRows, stats, l)

	stats.SetActivity("Loading data into the database")
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.importEntry(ctx, e, stats, l); err != nil {
			return fmt.Errorf("row %d: %w", e.RowNumber, err)
		}
	}
	return nil
}

func (i *Importer) importEntry(ctx context.Context, e Entry, stats *JobStats, l *zap.Logger) error {
	seen, err := i.payments.ConfirmationCodeExists(ctx, e.Record.ConfirmationCode)
	if err != nil {
		return err
	}
	if seen {
		stats.Bump(CountAlreadyProcessed)
		return nil
	}

	res, err := i.engine.ResolveFromImport(ctx, e.Record)
	if errors.Is(err, reconcile.ErrIdentityConflict) {
		l.Error("Could not reconcile player, skipping row", zap.Int("row", e.RowNumber), zap.Error(err))
		stats.Bump(CountIdentityConflicts)
		stats.Bump(CountRowsSkipped)
		return nil
	}
	if err != nil {
		return err
	}
	if res.Outcome == reconcile.OutcomeCreated {
		stats.Bump(CountPlayersCreated)
	} else {
		stats.Bump(CountPlayersMatched)
	}

	interval := membership.Interval{ValidFrom: e.Record.ValidFrom, ValidUntil: e.Record.ValidUntil}
	err = i.payments.RecordPayment(ctx, res.Player.ID, interval, e.Payment)
	if errors.Is(err, memberships.ErrPaymentExists) {
		stats.Bump(CountAlreadyProcessed)
		return nil
	}
	if err != nil {
		return err
	}
	stats.Bump(CountRowsImported)
	return nil
}

// Refresh imports the sheet unless it was imported within the reload latency.
func (i *Importer) Refresh(ctx context.Context) error {
	_, err := i.Run(ctx, false)
	if errors.Is(err, ErrReloadThrottled) {
		return nil
	}
	return err
}

func (i *Importer) publish(stats *JobStats) {
	i.lastMu.Lock()
	defer i.lastMu.Unlock()
	i.last = stats
}

// Last returns a copy of the stats of the running or most recent job, or nil.
func (i *Importer) Last() *JobStats {
	i.lastMu.Lock()
	last := i.last
	i.lastMu.Unlock()
	if last == nil {
		return nil
	}
	return last.Snapshot()
}
