package cmd

import (
	"fmt"

	"bcds-membership/core/cache"
	"bcds-membership/core/config"
	"bcds-membership/core/database"
	"bcds-membership/core/logger"
	"bcds-membership/core/reconcile"
	"bcds-membership/core/storage"
	"bcds-membership/feature/memberships"
	membershipmodels "bcds-membership/feature/memberships/models"
	"bcds-membership/feature/pdga"
	"bcds-membership/feature/players"
	playermodels "bcds-membership/feature/players/models"
	"bcds-membership/feature/sheet"
	"bcds-membership/feature/tournament"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds the components shared by the commands. Optional components are
// nil when their backend is unavailable.
type deps struct {
	cfg    *config.Config
	logger *zap.Logger

	db       *gorm.DB
	storage  storage.Client
	cache    cache.Cache
	registry *pdga.Client

	players     *players.Store
	refresher   memberships.Refresher
	memberships *memberships.Service
	engine      *reconcile.Engine
	importer    *sheet.Importer
	tournaments *tournament.Service

	closers []func() error
}

// bootstrap loads the configuration and connects every backend. Only a
// missing database is fatal, and only when requireDB is set.
func bootstrap(requireDB bool) (*deps, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	d := &deps{cfg: cfg, logger: logg, cache: cache.Noop{}}

	if conn, err := database.Connect(cfg.Database); err != nil {
		if requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		d.db = conn
		logg.Info("Connected to player registry database", zap.String("driver", cfg.Database.Driver))
	}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Storage client unavailable, sheet import disabled", zap.Error(err))
	} else {
		d.storage = client
	}

	if cfg.Cache.URL != "" {
		if rc, err := cache.New(cfg.Cache); err != nil {
			logg.Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			d.cache = rc
			d.closers = append(d.closers, rc.Close)
		}
	}

	if cfg.PDGA.User != "" {
		d.registry = pdga.NewClient(cfg.PDGA, d.cache, cfg.Cache.TournamentTTL(), logg)
	} else {
		logg.Warn("PDGA credentials not configured, tournament reports disabled")
	}

	if d.db == nil {
		return d, nil
	}

	d.players = players.NewStore(d.db)
	d.engine = reconcile.NewEngine(d.players, logg)
	membershipStore := memberships.NewStore(d.db)

	if d.storage != nil {
		source := sheet.NewObjectSource(d.storage, cfg.Storage.Bucket, cfg.Sheet.ObjectName)
		d.importer = sheet.NewImporter(source, d.engine, membershipStore, d.cache, cfg.Cache.ReloadLatency(), cfg.Sheet, logg)
	}

	if cfg.Sheet.ReloadOnQuery && d.importer != nil {
		d.refresher = d.importer
	}
	d.memberships = memberships.NewService(d.players, membershipStore, d.refresher, logg)

	if d.registry != nil {
		d.tournaments = tournament.NewService(d.registry, d.engine, d.memberships.Evaluator(), logg)
	}

	return d, nil
}

// models lists every gorm model of the registry.
func models() []any {
	return append(playermodels.All(), membershipmodels.All()...)
}

func (d *deps) Close() {
	for _, c := range d.closers {
		_ = c()
	}
	_ = d.logger.Sync()
}
