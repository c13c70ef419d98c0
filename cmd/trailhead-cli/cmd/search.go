package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trailhead/internal/application/commands"
)

func newSearchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search nodes by name",
		Long: `Search for nodes by name.

Results are ranked by relevance using fuzzy matching, most recently
accessed first on ties.

Examples:
  trailhead-cli search web
  trailhead-cli search "lnch"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := commands.NewSearchCommand(s.graph(), args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results found")
				return nil
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", r.Node.ID, r.Path)
			}
			return nil
		},
	}
}
