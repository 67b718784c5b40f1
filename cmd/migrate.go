package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the registry tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the player registry tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.db.AutoMigrate(models()...); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		d.logger.Info("Database schema is up to date", zap.Int("models", len(models())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
