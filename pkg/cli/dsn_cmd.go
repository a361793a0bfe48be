package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bi-demo/internal/domain"
	"bi-demo/internal/policy"
)

func newDSNCmd(header *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dsn",
		Short: "Print the effective MySQL DSN after connection rewriting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, err := loadEngine()
			if err != nil {
				return err
			}
			rc := engine.UserContext(*header)
			ds := engine.ResolveDataSource(rc, domain.DataSource{Kind: domain.SourceMySQL})
			cred := engine.Authenticate(rc, ds)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), policy.DSN(ds, cred))
			return err
		},
	}
}
