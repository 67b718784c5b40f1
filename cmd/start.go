package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"bcds-membership/core/loader"
	"bcds-membership/core/logger"
	"bcds-membership/core/middleware/auth"
	"bcds-membership/core/middleware/rayid"
	"bcds-membership/feature/integrity"
	"bcds-membership/feature/memberships"
	"bcds-membership/feature/players"
	"bcds-membership/feature/sheet"
	"bcds-membership/feature/tournament"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title BCDS Membership API
// @version 1.0
// @description API for club membership and player registry queries.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the membership server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer d.Close()
		logg := d.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		registerFeatures(mgr, d)

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey}))
		if !d.cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, the API is unprotected")
		}

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", d.cfg.Server.Port))
			if err := app.Listen(":" + d.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func registerFeatures(mgr *loader.Manager, d *deps) {
	membershipFeature := memberships.NewFeature(d.db, d.players, d.refresher, d.logger)

	var registry tournament.Registry
	if d.registry != nil && d.db != nil {
		registry = d.registry
	}

	mgr.Register(players.NewFeature(d.db, d.logger))
	mgr.Register(membershipFeature)
	mgr.Register(sheet.NewFeature(d.importer))
	mgr.Register(tournament.NewFeature(registry, d.engine, membershipFeature.Service().Evaluator(), d.logger))
	mgr.Register(integrity.NewFeature(d.storage, d.cfg.Storage.Bucket, d.cfg.Sheet.ObjectName, d.db, models(), d.logger))
}

func init() {
	RootCmd.AddCommand(startCmd)
}
