package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trailhead/internal/application/commands"
	"trailhead/internal/domain"
)

func newTreeCmd(s *session) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Display a filtered tree",
		Long: fmt.Sprintf(`Display the graph as a tree, at most %d levels below each start node.

Nodes reachable through several parents appear once, at their shallowest
depth. Members of the current context are marked with '*'.

Filters: %s

Examples:
  trailhead-cli tree
  trailhead-cli tree --filter projects`, domain.MaxTreeDepth, filterNames()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := commands.NewTreeCommand(s.graph(), filter).Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No nodes")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), commands.RenderTree(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", domain.FilterAll.String(), "tree filter")
	return cmd
}

func filterNames() string {
	names := make([]string, 0, len(domain.AllFilters))
	for _, f := range domain.AllFilters {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <node>",
		Short: "Show a node with its parents and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := commands.NewNeighboursCommand(s.graph(), args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Path)
			fmt.Fprintf(out, "  id: %s\n", res.Node.ID)
			if res.Node.Temp {
				fmt.Fprintln(out, "  temp")
			}
			printNodes(out, "parents", res.Parents)
			printNodes(out, "children", res.Children)
			return nil
		},
	}
}
