package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopguide/internal/core/schema"
)

// DomainsCmd prints the registered schemas, embedded or loaded from --file
func DomainsCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List shopping domains and their slots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry(file)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), reg.All())
			}
			for _, s := range reg.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Domain, s.Category)
				for _, p := range []schema.Priority{schema.High, schema.Medium, schema.Low} {
					for _, sl := range s.ByPriority(p) {
						fmt.Fprintf(cmd.OutOrStdout(), "  %-7s %s\n", p, sl.Name)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Schema YAML file (defaults to the embedded schemas)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func registry(file string) (*schema.Registry, error) {
	if file == "" {
		return schema.Default()
	}
	return schema.Load(file)
}
