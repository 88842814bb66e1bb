package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"shopguide/internal/modkit"
	"shopguide/internal/platform/config"
	idom "shopguide/internal/services/interview/domain"
	interviewmod "shopguide/internal/services/interview/module"
	"shopguide/internal/services/search/repo"
	"shopguide/internal/services/search/service"
)

// ChatCmd runs an interview over stdin lines against a JSON catalog file
// using the keyword capabilities and an in process session cache
func ChatCmd() *cobra.Command {
	var (
		catalog string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run a local discovery interview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := repo.NewMemory()
			if catalog != "" {
				m, err := repo.LoadMemory(catalog)
				if err != nil {
					return err
				}
				st = m
			}
			cfg := service.DefaultConfig()
			if limit > 0 {
				cfg.DefaultLimit = limit
			}
			search := service.New(st, cfg)

			mod := interviewmod.New(modkit.Deps{Cfg: config.New()}, search)
			conv := mod.Ports().(interviewmod.Ports).Conversations

			s, err := conv.Start(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "What are you shopping for?")

			in := bufio.NewScanner(cmd.InOrStdin())
			for in.Scan() {
				line := strings.TrimSpace(in.Text())
				if line == "" {
					continue
				}
				res, err := conv.Process(cmd.Context(), s.ID, line, nil)
				if err != nil {
					return err
				}
				if done := printTurn(out, res); done {
					return nil
				}
			}
			return in.Err()
		},
	}
	cmd.Flags().StringVar(&catalog, "catalog", "", "JSON product catalog")
	cmd.Flags().IntVar(&limit, "limit", 0, "Results per search")
	return cmd
}

func printTurn(w io.Writer, res idom.TurnResult) bool {
	r := res.Reply
	if r.Question != nil {
		fmt.Fprintln(w, r.Question.Text)
		if len(r.Question.QuickReplies) > 0 {
			fmt.Fprintf(w, "  [%s]\n", strings.Join(r.Question.QuickReplies, " | "))
		}
		return false
	}
	if r.Handoff != nil {
		fmt.Fprintf(w, "searching %s (%s)\n", r.Handoff.Domain, r.Handoff.Reason)
	}
	if res.Results == nil || res.Results.NoResults {
		fmt.Fprintln(w, "no matching products")
		return true
	}
	for _, p := range res.Results.Products {
		fmt.Fprintf(w, "  %s\t%s\t$%.2f\n", p.ID, p.Name, float64(p.PriceCents)/100)
	}
	return true
}
