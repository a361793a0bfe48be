package cli

import (
	"github.com/spf13/cobra"

	"bi-demo/internal/domain"
)

func newCheckCmd(header *string) *cobra.Command {
	var (
		table     string
		procedure string
		database  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a table, procedure, or database is exposed to the caller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := loadEngine()
			if err != nil {
				return err
			}
			rc := engine.UserContext(*header)

			result := map[string]any{"userId": rc.UserID, "role": rc.Role}
			if database != "" {
				result["databaseAllowed"] = engine.FilterDataSource(rc, domain.DataSource{
					Kind:     domain.SourceMySQL,
					Database: database,
				})
			}
			if table != "" || procedure != "" {
				result["itemAllowed"] = engine.FilterDataSourceItem(rc, domain.DataSourceItem{
					Table:     table,
					Procedure: procedure,
				})
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table name to check")
	cmd.Flags().StringVar(&procedure, "procedure", "", "stored procedure name to check")
	cmd.Flags().StringVar(&database, "database", "", "database name to check at the data-source level")
	return cmd
}
