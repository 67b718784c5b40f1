package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"bcds-membership/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the database schema and the membership sheet storage",
	Long:  `Compares the database schema with the registry models and checks that the storage bucket holds the membership sheet export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer d.Close()

		svc := integrity.NewService(d.storage, d.cfg.Storage.Bucket, d.cfg.Sheet.ObjectName, d.db, models(), d.logger)
		failed := false

		schema, err := svc.CheckSchema()
		if err != nil {
			d.logger.Error("Schema check failed", zap.Error(err))
			failed = true
		} else {
			names := make([]string, 0, len(schema.Tables))
			for name := range schema.Tables {
				names = append(names, name)
			}
			sort.Strings(names)

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				tbl := schema.Tables[name]
				rows = append(rows, []string{
					name,
					tbl.Status,
					strings.Join(tbl.MissingColumns, ", "),
					strings.Join(tbl.TypeMismatches, ", "),
				})
			}
			for _, e := range schema.Errors {
				rows = append(rows, []string{"", "error", e, ""})
			}
			renderTable(os.Stdout, "Schema ("+schema.Driver+")", []string{"Table", "Status", "Missing", "Type Mismatches"}, rows)
			failed = failed || !schema.Matched
		}

		st, err := svc.CheckStorage(cmd.Context())
		if err != nil {
			d.logger.Error("Storage check failed", zap.Error(err))
			failed = true
		} else {
			rows := [][]string{
				{"Bucket", st.Bucket},
				{"Object", st.Object},
				{"Present", fmt.Sprintf("%t", st.Present)},
			}
			if st.Present {
				rows = append(rows,
					[]string{"Size", fmt.Sprintf("%d", st.Size)},
					[]string{"Last Modified", st.LastModified.Format("2006-01-02 15:04:05")})
			}
			renderTable(os.Stdout, "Storage", []string{"Field", "Value"}, rows)
			failed = failed || !st.Present
		}

		if failed {
			return fmt.Errorf("integrity check found problems")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
}
