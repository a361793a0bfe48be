package cli

import (
	"github.com/spf13/cobra"

	"bi-demo/internal/domain"
)

func newQueryCmd(header *string) *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "query <item-id>",
		Short: "Show the templated query or procedure call for a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := loadEngine()
			if err != nil {
				return err
			}
			rc := engine.UserContext(*header)
			item := engine.ResolveDataSourceItem(rc, domain.DataSourceItem{
				ID:         args[0],
				Table:      table,
				DataSource: domain.DataSource{Kind: domain.SourceMySQL},
			})

			out := map[string]any{"id": item.ID, "kind": item.Kind}
			if item.CustomQuery != "" {
				out["customQuery"] = item.CustomQuery
			}
			if item.Procedure != "" {
				out["procedure"] = item.Procedure
				out["procedureParameters"] = item.ProcedureParams
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table name for the generic browse path")
	return cmd
}
