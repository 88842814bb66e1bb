package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"shopguide/internal/core/filters"
	"shopguide/internal/core/specificity"
	"shopguide/internal/platform/config"
	interviewmod "shopguide/internal/services/interview/module"
)

// ScoreCmd scores the query in args, or each stdin line when args are empty
func ScoreCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "score [query...]",
		Short: "Score query specificity",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := specificity.New(interviewmod.PolicyFromConfig(config.New()))
			var prior *filters.SearchFilters
			if category != "" {
				prior = &filters.SearchFilters{Category: category}
			}

			if len(args) > 0 {
				return writeJSON(cmd.OutOrStdout(), sc.Evaluate(strings.Join(args, " "), prior))
			}
			in := bufio.NewScanner(cmd.InOrStdin())
			for in.Scan() {
				line := strings.TrimSpace(in.Text())
				if line == "" {
					continue
				}
				if err := writeJSON(cmd.OutOrStdout(), sc.Evaluate(line, prior)); err != nil {
					return err
				}
			}
			return in.Err()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category already known from earlier turns")
	return cmd
}
