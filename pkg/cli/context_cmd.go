package cli

import (
	"github.com/spf13/cobra"
)

func newContextCmd(header *string) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Derive the request context for an identity header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := loadEngine()
			if err != nil {
				return err
			}
			rc := engine.UserContext(*header)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"userId":        rc.UserID,
				"orderId":       rc.OrderID,
				"role":          rc.Role,
				"allowedTables": rc.AllowedTables,
				"host":          rc.Connection.Host,
				"database":      rc.Connection.Database,
			})
		},
	}
}
