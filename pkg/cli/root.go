// Package cli implements the policyctl command line interface: offline
// evaluation of the policy pipeline against a given identity header.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bi-demo/internal/config"
	"bi-demo/internal/policy"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the policyctl command tree.
func NewRootCmd() *cobra.Command {
	var header string

	rootCmd := &cobra.Command{
		Use:           "policyctl",
		Short:         "Dashboard policy engine CLI",
		Long:          "Evaluate the dashboard access-policy pipeline for a given identity header without running the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&header, "header", "",
		"identity header value, e.g. \"userId:11,orderId:1001\"")

	rootCmd.AddCommand(newContextCmd(&header))
	rootCmd.AddCommand(newCheckCmd(&header))
	rootCmd.AddCommand(newQueryCmd(&header))
	rootCmd.AddCommand(newDSNCmd(&header))
	return rootCmd
}

// loadEngine builds a policy engine from the environment. CLI diagnostics go
// to stderr so stdout stays machine-readable.
func loadEngine() (*policy.Engine, *config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	return policy.NewEngine(cfg, logger), cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
