// Package cli implements the shopguide command line: scoring queries,
// listing domain schemas and running a local interview against a catalog file
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"shopguide/internal/platform/config"
)

// Execute runs the root command
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "shopguide",
		Short:         "Product discovery tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotEnv()
		},
	}
	root.AddCommand(
		ScoreCmd(),
		DomainsCmd(),
		ChatCmd(),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
