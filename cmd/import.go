package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var forceImport bool

// importCmd is the parent command for data imports.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import membership data",
}

// importSheetCmd imports the membership payment sheet.
var importSheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Import the membership sheet from object storage",
	Long: `Reads the membership sheet export from the storage bucket, reconciles every
row with the player registry and records the payments and memberships.

Rows whose confirmation code was already imported are skipped, so the
import can be repeated safely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer d.Close()

		if d.importer == nil {
			return errors.New("sheet import needs object storage, check the storage configuration")
		}

		stats, err := d.importer.Run(cmd.Context(), forceImport)
		if stats != nil {
			title := fmt.Sprintf("Import %s: %s in %s", stats.ID, stats.Status, stats.Duration)
			renderTable(os.Stdout, title, []string{"Counter", "Value"}, counterRows(stats.Counters))
		}
		return err
	},
}

func init() {
	importSheetCmd.Flags().BoolVar(&forceImport, "force", false, "Import even if the sheet was imported within the reload latency")
	importCmd.AddCommand(importSheetCmd)
	RootCmd.AddCommand(importCmd)
}
